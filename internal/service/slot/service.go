package slot

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

// Service enforces the free/booked slot state machine. It is the only
// writer of slot rows.
type Service struct {
	repo     repository.SlotRepository
	accounts repository.AccountRepository
	notifier notification.Dispatcher
	events   *event.Service
	logger   zerolog.Logger
}

func NewService(repo repository.SlotRepository, accounts repository.AccountRepository, notifier notification.Dispatcher, events *event.Service, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		notifier: notifier,
		events:   events,
		logger:   logger,
	}
}

// CreateSlots bulk-inserts free slots for a doctor's working day.
// Duplicate (date, time) pairs for the doctor are skipped, and only the
// slots that were actually written come back to the caller.
func (s *Service) CreateSlots(ctx context.Context, req *model.CreateSlotsRequest) ([]*model.Slot, error) {
	slots := make([]*model.Slot, 0, len(req.Slots))
	for _, st := range req.Slots {
		date, err := model.ParseSlotDate(st.Date)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error(), err)
		}
		tm, err := model.ParseSlotTime(st.Time)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error(), err)
		}
		slots = append(slots, &model.Slot{
			DoctorID: req.DoctorID,
			Date:     date,
			Time:     tm,
			Status:   model.SlotStatusFree,
		})
	}

	inserted, err := s.repo.CreateBatch(ctx, slots)
	if err != nil {
		return nil, fmt.Errorf("failed to create slots: %w", err)
	}
	if skipped := len(slots) - len(inserted); skipped > 0 {
		s.logger.Info().
			Str("doctor_id", req.DoctorID.String()).
			Int("skipped", skipped).
			Msg("duplicate slots skipped")
	}
	return inserted, nil
}

func (s *Service) ListFreeSlots(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.Slot, error) {
	date, err := model.ParseSlotDate(fromDate)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error(), err)
	}
	slots, err := s.repo.ListFree(ctx, doctorID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list free slots: %w", err)
	}
	return slots, nil
}

func (s *Service) ListSlots(ctx context.Context, filters *model.SlotFilters) ([]*model.SlotWithOccupant, error) {
	if filters.FromDate != "" {
		date, err := model.ParseSlotDate(filters.FromDate)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error(), err)
		}
		filters.FromDate = date
	}
	if filters.ToDate != "" {
		date, err := model.ParseSlotDate(filters.ToDate)
		if err != nil {
			return nil, apperrors.InvalidInput(err.Error(), err)
		}
		filters.ToDate = date
	}

	slots, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (s *Service) GetSlot(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return slot, nil
}

// BookSlot moves a free slot to booked. The update is guarded on the
// current status: a concurrent or prior booking surfaces as Conflict
// instead of being overwritten. With Reassign set, an already-booked
// slot is handed to the new occupant and the confirmation re-emitted.
func (s *Service) BookSlot(ctx context.Context, id uuid.UUID, req *model.BookSlotRequest) (*model.Slot, error) {
	if req.Reassign {
		if err := s.repo.Reassign(ctx, id, req.OccupantID, req.Reason); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("slot", err)
			}
			return nil, fmt.Errorf("failed to reassign slot: %w", err)
		}
	} else {
		booked, err := s.repo.Book(ctx, id, req.OccupantID, req.Reason)
		if err != nil {
			return nil, fmt.Errorf("failed to book slot: %w", err)
		}
		if !booked {
			if _, err := s.repo.Get(ctx, id); err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return nil, apperrors.NotFound("slot", err)
				}
				return nil, fmt.Errorf("failed to get slot: %w", err)
			}
			return nil, apperrors.Conflict("slot is already booked", nil)
		}
	}

	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	s.notifyBooking(ctx, slot, req.OccupantID)

	if err := s.events.Emit(ctx, "slot.booked", slot); err != nil {
		s.logger.Error().Err(err).Str("slot_id", id.String()).Msg("failed to emit slot.booked event")
	}

	return slot, nil
}

// UpdateSlot mutates occupant, reason and status. clear_data supersedes
// the other arguments and is applied last. The booked-iff-occupied
// invariant is enforced before anything is written, and the update path
// is not an escape hatch around booking: swapping the occupant of a
// booked slot is a Conflict (reassignment goes through BookSlot), and a
// transition to booked emits the same confirmation a booking does.
func (s *Service) UpdateSlot(ctx context.Context, id uuid.UUID, req *model.UpdateSlotRequest) (*model.Slot, error) {
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}

	if req.ClearData {
		slot.OccupantID = nil
		slot.Reason = nil
		slot.Status = model.SlotStatusFree

		if err := s.repo.Update(ctx, slot); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperrors.NotFound("slot", err)
			}
			return nil, fmt.Errorf("failed to update slot: %w", err)
		}
		return slot, nil
	}

	wasFree := slot.Status == model.SlotStatusFree

	if req.OccupantID != nil && slot.Status == model.SlotStatusBooked &&
		slot.OccupantID != nil && *slot.OccupantID != *req.OccupantID {
		return nil, apperrors.Conflict("slot is already booked, reassign it through booking", nil)
	}

	if req.OccupantID != nil {
		slot.OccupantID = req.OccupantID
	}
	if req.Reason != nil {
		slot.Reason = req.Reason
	}
	if req.Status != nil {
		slot.Status = *req.Status
	}

	switch {
	case slot.Status == model.SlotStatusBooked && slot.OccupantID == nil:
		return nil, apperrors.InvalidInput("a booked slot requires an occupant", nil)
	case slot.Status == model.SlotStatusFree && slot.OccupantID != nil:
		slot.OccupantID = nil
		slot.Reason = nil
	}

	if err := s.repo.Update(ctx, slot); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to update slot: %w", err)
	}

	if wasFree && slot.Status == model.SlotStatusBooked {
		s.notifyBooking(ctx, slot, *slot.OccupantID)

		if err := s.events.Emit(ctx, "slot.booked", slot); err != nil {
			s.logger.Error().Err(err).Str("slot_id", id.String()).Msg("failed to emit slot.booked event")
		}
	}
	return slot, nil
}

// ClearSlot is the administrative correction path: the occupant and
// reason are dropped without notifying anyone.
func (s *Service) ClearSlot(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	if err := s.repo.Clear(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("slot", err)
		}
		return nil, fmt.Errorf("failed to clear slot: %w", err)
	}
	slot, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return slot, nil
}

func (s *Service) DeleteSlot(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("slot", err)
		}
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}

func (s *Service) notifyBooking(ctx context.Context, slot *model.Slot, occupantID uuid.UUID) {
	doctor, err := s.accounts.GetDoctor(ctx, slot.DoctorID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("doctor_id", slot.DoctorID.String()).
			Msg("failed to resolve doctor for booking notification")
		return
	}

	evt := &model.NotificationEvent{
		Kind:           model.EventBookingConfirmed,
		RecipientID:    occupantID,
		DoctorName:     doctor.Name,
		Specialization: doctor.Specialization,
		Date:           slot.Date,
		Time:           slot.Time,
	}
	if err := s.notifier.Dispatch(ctx, evt); err != nil {
		s.logger.Error().Err(err).
			Str("slot_id", slot.ID.String()).
			Msg("failed to dispatch booking notification")
	}
}
