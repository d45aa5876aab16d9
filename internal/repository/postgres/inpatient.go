package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

func (r *inpatientRepository) Create(ctx context.Context, care *model.InpatientCare) error {
	query := `
		INSERT INTO inpatient_cares (
			id, med_center_id, patient_id, ward, description, active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	care.ID = uuid.New()
	care.Active = true
	care.CreatedAt = time.Now()
	care.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		care.ID,
		care.MedCenterID,
		care.PatientID,
		care.Ward,
		care.Description,
		care.Active,
		care.CreatedAt,
		care.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create inpatient care: %w", err)
	}
	return nil
}

func (r *inpatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.InpatientCare, error) {
	query := `
		SELECT id, med_center_id, patient_id, ward, description, active,
		       created_at, updated_at
		FROM inpatient_cares
		WHERE id = $1
	`
	var care model.InpatientCare
	err := r.db.GetContext(ctx, &care, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inpatient care: %w", err)
	}
	return &care, nil
}

func (r *inpatientRepository) ListByMedCenter(ctx context.Context, medCenterID uuid.UUID, active bool) ([]*model.InpatientCare, error) {
	query := `
		SELECT id, med_center_id, patient_id, ward, description, active,
		       created_at, updated_at
		FROM inpatient_cares
		WHERE med_center_id = $1 AND active = $2
		ORDER BY created_at DESC
	`
	var cares []*model.InpatientCare
	err := r.db.SelectContext(ctx, &cares, query, medCenterID, active)
	if err != nil {
		return nil, fmt.Errorf("failed to list inpatient cares: %w", err)
	}
	return cares, nil
}

func (r *inpatientRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `
		UPDATE inpatient_cares
		SET active = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update inpatient care: %w", err)
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
