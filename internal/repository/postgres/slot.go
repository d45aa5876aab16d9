package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

// CreateBatch inserts free slots in bulk and returns the rows that were
// actually written. Duplicate (doctor, date, time) rows are skipped via
// the unique constraint rather than erroring out, so a skipped slot's
// freshly stamped ID never leaks to the caller.
func (r *slotRepository) CreateBatch(ctx context.Context, slots []*model.Slot) ([]*model.Slot, error) {
	query := `
		INSERT INTO slots (
			id, doctor_id, date, time, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (doctor_id, date, time) DO NOTHING
	`

	inserted := make([]*model.Slot, 0, len(slots))
	for _, slot := range slots {
		slot.ID = uuid.New()
		slot.Status = model.SlotStatusFree
		slot.CreatedAt = time.Now()
		slot.UpdatedAt = time.Now()

		result, err := r.db.ExecContext(ctx, query,
			slot.ID,
			slot.DoctorID,
			slot.Date,
			slot.Time,
			slot.Status,
			slot.CreatedAt,
			slot.UpdatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to create slot: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return inserted, fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 1 {
			inserted = append(inserted, slot)
		}
	}
	return inserted, nil
}

func (r *slotRepository) Get(ctx context.Context, id uuid.UUID) (*model.Slot, error) {
	query := `
		SELECT id, doctor_id, date, time, occupant_id, reason, status,
		       created_at, updated_at
		FROM slots
		WHERE id = $1
	`
	var slot model.Slot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

func (r *slotRepository) ListFree(ctx context.Context, doctorID uuid.UUID, fromDate string) ([]*model.Slot, error) {
	query := `
		SELECT id, doctor_id, date, time, occupant_id, reason, status,
		       created_at, updated_at
		FROM slots
		WHERE doctor_id = $1
		AND occupant_id IS NULL
		AND date >= $2
		ORDER BY date ASC, time ASC
	`
	var slots []*model.Slot
	err := r.db.SelectContext(ctx, &slots, query, doctorID, fromDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list free slots: %w", err)
	}
	return slots, nil
}

func (r *slotRepository) List(ctx context.Context, filters *model.SlotFilters) ([]*model.SlotWithOccupant, error) {
	query := `
		SELECT s.id, s.doctor_id, s.date, s.time, s.occupant_id, s.reason, s.status,
		       s.created_at, s.updated_at,
		       COALESCE(a.name, 'unknown patient') AS occupant_name
		FROM slots s
		LEFT JOIN accounts a ON a.id = s.occupant_id
		WHERE s.doctor_id = $1
	`
	args := []interface{}{filters.DoctorID}
	argCount := 2

	if filters.FromDate != "" {
		query += fmt.Sprintf(" AND s.date >= $%d", argCount)
		args = append(args, filters.FromDate)
		argCount++
	}

	if filters.ToDate != "" {
		query += fmt.Sprintf(" AND s.date <= $%d", argCount)
		args = append(args, filters.ToDate)
		argCount++
	}

	if filters.Status != "" {
		query += fmt.Sprintf(" AND s.status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}

	query += " ORDER BY s.date ASC, s.time ASC"

	var slots []*model.SlotWithOccupant
	err := r.db.SelectContext(ctx, &slots, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// Book is the status-guarded conditional update: it only succeeds when the
// slot is currently free. Returns false when the guard did not match.
func (r *slotRepository) Book(ctx context.Context, id, occupantID uuid.UUID, reason *string) (bool, error) {
	query := `
		UPDATE slots
		SET occupant_id = $1, reason = $2, status = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		occupantID,
		reason,
		model.SlotStatusBooked,
		time.Now(),
		id,
		model.SlotStatusFree,
	)
	if err != nil {
		return false, fmt.Errorf("failed to book slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// Reassign overwrites the occupant regardless of current status.
func (r *slotRepository) Reassign(ctx context.Context, id, occupantID uuid.UUID, reason *string) error {
	query := `
		UPDATE slots
		SET occupant_id = $1, reason = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		occupantID,
		reason,
		model.SlotStatusBooked,
		time.Now(),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to reassign slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *slotRepository) Clear(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE slots
		SET occupant_id = NULL, reason = NULL, status = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, model.SlotStatusFree, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to clear slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Update mutates occupant, reason and status only; doctor, date and time
// are immutable after creation.
func (r *slotRepository) Update(ctx context.Context, slot *model.Slot) error {
	query := `
		UPDATE slots
		SET occupant_id = $1, reason = $2, status = $3, updated_at = $4
		WHERE id = $5
	`
	slot.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		slot.OccupantID,
		slot.Reason,
		slot.Status,
		slot.UpdatedAt,
		slot.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *slotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM slots
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
