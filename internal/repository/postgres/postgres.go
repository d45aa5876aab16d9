package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/healthdesk/clinic-api/internal/repository"
)

type slotRepository struct {
	db *sqlx.DB
}

type accountRepository struct {
	db *sqlx.DB
}

type recordRepository struct {
	db *sqlx.DB
}

type medCenterRepository struct {
	db *sqlx.DB
}

type feedbackRepository struct {
	db *sqlx.DB
}

type inpatientRepository struct {
	db *sqlx.DB
}

type outboxRepository struct {
	db *sqlx.DB
}

func NewSlotRepository(db *sqlx.DB) repository.SlotRepository {
	return &slotRepository{db: db}
}

func NewAccountRepository(db *sqlx.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func NewRecordRepository(db *sqlx.DB) repository.RecordRepository {
	return &recordRepository{db: db}
}

func NewMedCenterRepository(db *sqlx.DB) repository.MedCenterRepository {
	return &medCenterRepository{db: db}
}

func NewFeedbackRepository(db *sqlx.DB) repository.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func NewInpatientRepository(db *sqlx.DB) repository.InpatientRepository {
	return &inpatientRepository{db: db}
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}
