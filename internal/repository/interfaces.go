package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

// All repository interfaces in one file
type (
	// SlotRepository owns slot rows; the slot service is the only writer.
	SlotRepository interface {
		CreateBatch(ctx context.Context, slots []*model.Slot) ([]*model.Slot, error)
		Get(ctx context.Context, id uuid.UUID) (*model.Slot, error)
		ListFree(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.Slot, error)
		List(ctx context.Context, filters *model.SlotFilters) ([]*model.SlotWithOccupant, error)
		Book(ctx context.Context, id, occupantID uuid.UUID, reason *string) (bool, error)
		Reassign(ctx context.Context, id, occupantID uuid.UUID, reason *string) error
		Clear(ctx context.Context, id uuid.UUID) error
		Update(ctx context.Context, slot *model.Slot) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// AccountRepository doubles as the account directory for the
	// notification dispatcher and occupant-name resolution.
	AccountRepository interface {
		Create(ctx context.Context, account *model.Account) error
		Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
		GetByEmail(ctx context.Context, email string) (*model.Account, error)
		GetByLicenseKeyHash(ctx context.Context, keyHash string) (*model.Account, error)
		Update(ctx context.Context, account *model.Account) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, medCenterID uuid.UUID) ([]*model.Account, error)
		Search(ctx context.Context, medCenterID uuid.UUID, query string) ([]*model.Account, error)
		SetTelegramID(ctx context.Context, id uuid.UUID, telegramID *int64) error
		UpsertDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error
		GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		ListDoctors(ctx context.Context, medCenterID uuid.UUID) ([]*model.Doctor, error)
	}

	RecordRepository interface {
		Create(ctx context.Context, record *model.MedicalRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
		Update(ctx context.Context, record *model.MedicalRecord) error
		ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error)
	}

	MedCenterRepository interface {
		Create(ctx context.Context, center *model.MedicalCenter) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalCenter, error)
		List(ctx context.Context) ([]*model.MedicalCenter, error)
	}

	FeedbackRepository interface {
		Create(ctx context.Context, feedback *model.Feedback) error
		Get(ctx context.Context, id uuid.UUID) (*model.Feedback, error)
		List(ctx context.Context) ([]*model.Feedback, error)
		UpdateStatus(ctx context.Context, id uuid.UUID, status model.FeedbackStatus, reason *string) error
	}

	InpatientRepository interface {
		Create(ctx context.Context, care *model.InpatientCare) error
		Get(ctx context.Context, id uuid.UUID) (*model.InpatientCare, error)
		ListByMedCenter(ctx context.Context, medCenterID uuid.UUID, active bool) ([]*model.InpatientCare, error)
		SetActive(ctx context.Context, id uuid.UUID, active bool) error
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, status string, errorMessage *string) error
		DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
	}
)
