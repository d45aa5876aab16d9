package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	"github.com/healthdesk/clinic-api/internal/service/event"
	"github.com/healthdesk/clinic-api/internal/service/notification"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

// Service owns medical records and produces record_completed events for
// the dispatcher when a visit is closed out.
type Service struct {
	repo     repository.RecordRepository
	accounts repository.AccountRepository
	notifier notification.Dispatcher
	events   *event.Service
	logger   zerolog.Logger
}

func NewService(repo repository.RecordRepository, accounts repository.AccountRepository, notifier notification.Dispatcher, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}
}

func (s *Service) CreateRecord(ctx context.Context, req *model.CreateRecordRequest) (*model.MedicalRecord, error) {
	date, err := model.ParseSlotDate(req.Date)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error(), err)
	}
	tm, err := model.ParseSlotTime(req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error(), err)
	}

	record := &model.MedicalRecord{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      tm,
		Status:    model.RecordStatusOpen,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}
	return record, nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("record", err)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

func (s *Service) ListPatientRecords(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// CompleteRecord closes out a visit and notifies the patient. The
// notification is best-effort; completion succeeds regardless of
// channel outcomes.
func (s *Service) CompleteRecord(ctx context.Context, id uuid.UUID, req *model.CompleteRecordRequest) (*model.MedicalRecord, error) {
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("record", err)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	if record.Status == model.RecordStatusCompleted {
		return nil, apperrors.Conflict("record is already completed", nil)
	}

	record.Description = req.Description
	record.TreatmentPlan = req.TreatmentPlan
	record.PaymentType = req.PaymentType
	record.Price = req.Price
	record.PhotoURLs = req.PhotoURLs
	record.Status = model.RecordStatusCompleted

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to complete record: %w", err)
	}

	s.notifyCompletion(ctx, record)

	if err := s.events.Emit(ctx, "record.completed", record); err != nil {
		s.logger.Error().Err(err).Str("record_id", id.String()).Msg("failed to emit record.completed event")
	}

	return record, nil
}

func (s *Service) notifyCompletion(ctx context.Context, record *model.MedicalRecord) {
	doctor, err := s.accounts.GetDoctor(ctx, record.DoctorID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("doctor_id", record.DoctorID.String()).
			Msg("failed to resolve doctor for completion notification")
		return
	}

	evt := &model.NotificationEvent{
		Kind:           model.EventRecordCompleted,
		RecipientID:    record.PatientID,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialization,
		Date:           record.Date,
		Time:           record.Time,
		Description:    record.Description,
		TreatmentPlan:  record.TreatmentPlan,
		PaymentType:    string(record.PaymentType),
		Price:          record.Price,
		PhotoURLs:      record.PhotoURLs,
	}
	if err := s.notifier.Dispatch(ctx, evt); err != nil {
		s.logger.Error().Err(err).
			Str("record_id", record.ID.String()).
			Msg("failed to dispatch completion notification")
	}
}
