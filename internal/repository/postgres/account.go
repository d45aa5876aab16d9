package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
)

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (
			id, med_center_id, name, role, email, telegram_id,
			password_hash, license_key_hash, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	account.ID = uuid.New()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.MedCenterID,
		account.Name,
		account.Role,
		account.Email,
		account.TelegramID,
		account.PasswordHash,
		account.LicenseKeyHash,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	query := `
		SELECT id, med_center_id, name, role, email, telegram_id,
		       password_hash, license_key_hash, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `
		SELECT id, med_center_id, name, role, email, telegram_id,
		       password_hash, license_key_hash, created_at, updated_at
		FROM accounts
		WHERE email = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, email)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByLicenseKeyHash(ctx context.Context, keyHash string) (*model.Account, error) {
	query := `
		SELECT id, med_center_id, name, role, email, telegram_id,
		       password_hash, license_key_hash, created_at, updated_at
		FROM accounts
		WHERE license_key_hash = $1
	`
	var account model.Account
	err := r.db.GetContext(ctx, &account, query, keyHash)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by license key: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Update(ctx context.Context, account *model.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, email = $2, updated_at = $3
		WHERE id = $4
	`
	account.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		account.Name,
		account.Email,
		account.UpdatedAt,
		account.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
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

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM accounts
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
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

func (r *accountRepository) List(ctx context.Context, medCenterID uuid.UUID) ([]*model.Account, error) {
	query := `
		SELECT id, med_center_id, name, role, email, telegram_id,
		       password_hash, license_key_hash, created_at, updated_at
		FROM accounts
		WHERE med_center_id = $1
		ORDER BY name ASC
	`
	var accounts []*model.Account
	err := r.db.SelectContext(ctx, &accounts, query, medCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) Search(ctx context.Context, medCenterID uuid.UUID, query string) ([]*model.Account, error) {
	q := `
		SELECT id, med_center_id, name, role, email, telegram_id,
		       password_hash, license_key_hash, created_at, updated_at
		FROM accounts
		WHERE med_center_id = $1
		AND name ILIKE '%' || $2 || '%'
		ORDER BY name ASC
	`
	var accounts []*model.Account
	err := r.db.SelectContext(ctx, &accounts, q, medCenterID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) SetTelegramID(ctx context.Context, id uuid.UUID, telegramID *int64) error {
	query := `
		UPDATE accounts
		SET telegram_id = $1, updated_at = $2
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, telegramID, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set telegram id: %w", err)
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

func (r *accountRepository) UpsertDoctorProfile(ctx context.Context, profile *model.DoctorProfile) error {
	query := `
		INSERT INTO doctor_profiles (account_id, specialization, cabinet)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE
		SET specialization = EXCLUDED.specialization, cabinet = EXCLUDED.cabinet
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.AccountID,
		profile.Specialization,
		profile.Cabinet,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert doctor profile: %w", err)
	}
	return nil
}

func (r *accountRepository) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `
		SELECT a.id, a.med_center_id, a.name, a.role, a.email, a.telegram_id,
		       a.password_hash, a.license_key_hash, a.created_at, a.updated_at,
		       d.specialization, d.cabinet
		FROM accounts a
		JOIN doctor_profiles d ON d.account_id = a.id
		WHERE a.id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *accountRepository) ListDoctors(ctx context.Context, medCenterID uuid.UUID) ([]*model.Doctor, error) {
	query := `
		SELECT a.id, a.med_center_id, a.name, a.role, a.email, a.telegram_id,
		       a.password_hash, a.license_key_hash, a.created_at, a.updated_at,
		       d.specialization, d.cabinet
		FROM accounts a
		JOIN doctor_profiles d ON d.account_id = a.id
		WHERE a.med_center_id = $1
		ORDER BY a.name ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, medCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
