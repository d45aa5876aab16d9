package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
	"github.com/healthdesk/clinic-api/pkg/security"
)

type Service struct {
	repo   repository.AccountRepository
	hasher security.PasswordHasher
}

func NewService(repo repository.AccountRepository, hasher security.PasswordHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// CreateAccount registers an account and returns it together with the
// one-time license key. Doctor accounts additionally get their
// capability profile row.
func (s *Service) CreateAccount(ctx context.Context, req *model.CreateAccountRequest) (*model.Account, string, error) {
	if req.Role == model.AccountRoleDoctor && (req.Specialization == nil || *req.Specialization == "") {
		return nil, "", apperrors.InvalidInput("specialization is required for doctor accounts", nil)
	}

	licenseKey, err := security.GenerateLicenseKey()
	if err != nil {
		return nil, "", apperrors.Internal(err)
	}
	keyHash := security.HashLicenseKey(licenseKey)

	account := &model.Account{
		MedCenterID:    req.MedCenterID,
		Name:           req.Name,
		Role:           req.Role,
		Email:          req.Email,
		LicenseKeyHash: &keyHash,
	}

	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, "", apperrors.InvalidInput("invalid password", err)
		}
		account.PasswordHash = &hash
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return nil, "", fmt.Errorf("failed to create account: %w", err)
	}

	if req.Role == model.AccountRoleDoctor {
		profile := &model.DoctorProfile{
			AccountID:      account.ID,
			Specialization: *req.Specialization,
		}
		if req.Cabinet != nil {
			profile.Cabinet = *req.Cabinet
		}
		if err := s.repo.UpsertDoctorProfile(ctx, profile); err != nil {
			return nil, "", fmt.Errorf("failed to create doctor profile: %w", err)
		}
	}

	return account, licenseKey, nil
}

func (s *Service) GetAccount(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *Service) UpdateAccount(ctx context.Context, id uuid.UUID, req *model.UpdateAccountRequest) (*model.Account, error) {
	account, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Email != nil {
		account.Email = req.Email
	}

	if err := s.repo.Update(ctx, account); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if account.Role == model.AccountRoleDoctor && (req.Specialization != nil || req.Cabinet != nil) {
		doctor, err := s.repo.GetDoctor(ctx, id)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get doctor profile: %w", err)
		}

		profile := &model.DoctorProfile{AccountID: id}
		if doctor != nil {
			profile.Specialization = doctor.Specialization
			profile.Cabinet = doctor.Cabinet
		}
		if req.Specialization != nil {
			profile.Specialization = *req.Specialization
		}
		if req.Cabinet != nil {
			profile.Cabinet = *req.Cabinet
		}
		if err := s.repo.UpsertDoctorProfile(ctx, profile); err != nil {
			return nil, fmt.Errorf("failed to update doctor profile: %w", err)
		}
	}

	return account, nil
}

func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("account", err)
		}
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

func (s *Service) ListAccounts(ctx context.Context, medCenterID uuid.UUID) ([]*model.Account, error) {
	accounts, err := s.repo.List(ctx, medCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) SearchAccounts(ctx context.Context, medCenterID uuid.UUID, query string) ([]*model.Account, error) {
	if query == "" {
		return nil, apperrors.InvalidInput("search query is required", nil)
	}
	accounts, err := s.repo.Search(ctx, medCenterID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

func (s *Service) ListDoctors(ctx context.Context, medCenterID uuid.UUID) ([]*model.Doctor, error) {
	doctors, err := s.repo.ListDoctors(ctx, medCenterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
