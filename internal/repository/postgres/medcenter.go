package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

func (r *medCenterRepository) Create(ctx context.Context, center *model.MedicalCenter) error {
	query := `
		INSERT INTO med_centers (id, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	center.ID = uuid.New()
	center.CreatedAt = time.Now()
	center.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		center.ID,
		center.Name,
		center.Address,
		center.Phone,
		center.CreatedAt,
		center.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create med center: %w", err)
	}
	return nil
}

func (r *medCenterRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalCenter, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM med_centers
		WHERE id = $1
	`
	var center model.MedicalCenter
	err := r.db.GetContext(ctx, &center, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get med center: %w", err)
	}
	return &center, nil
}

func (r *medCenterRepository) List(ctx context.Context) ([]*model.MedicalCenter, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM med_centers
		ORDER BY name ASC
	`
	var centers []*model.MedicalCenter
	err := r.db.SelectContext(ctx, &centers, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list med centers: %w", err)
	}
	return centers, nil
}
