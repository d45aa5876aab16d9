package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

func (r *recordRepository) Create(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		INSERT INTO medical_records (
			id, patient_id, doctor_id, date, time, description, treatment_plan,
			payment_type, price, photo_urls, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.PatientID,
		record.DoctorID,
		record.Date,
		record.Time,
		record.Description,
		record.TreatmentPlan,
		record.PaymentType,
		record.Price,
		record.PhotoURLs,
		record.Status,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medical record: %w", err)
	}
	return nil
}

func (r *recordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, description, treatment_plan,
		       payment_type, price, photo_urls, status, created_at, updated_at
		FROM medical_records
		WHERE id = $1
	`
	var record model.MedicalRecord
	err := r.db.GetContext(ctx, &record, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get medical record: %w", err)
	}
	return &record, nil
}

func (r *recordRepository) Update(ctx context.Context, record *model.MedicalRecord) error {
	query := `
		UPDATE medical_records
		SET description = $1, treatment_plan = $2, payment_type = $3,
		    price = $4, photo_urls = $5, status = $6, updated_at = $7
		WHERE id = $8
	`
	record.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		record.Description,
		record.TreatmentPlan,
		record.PaymentType,
		record.Price,
		record.PhotoURLs,
		record.Status,
		record.UpdatedAt,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medical record: %w", err)
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

func (r *recordRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	query := `
		SELECT id, patient_id, doctor_id, date, time, description, treatment_plan,
		       payment_type, price, photo_urls, status, created_at, updated_at
		FROM medical_records
		WHERE patient_id = $1
		ORDER BY date DESC, time DESC
	`
	var records []*model.MedicalRecord
	err := r.db.SelectContext(ctx, &records, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list medical records: %w", err)
	}
	return records, nil
}
