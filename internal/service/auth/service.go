package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	"github.com/healthdesk/clinic-api/pkg/auth"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
	"github.com/healthdesk/clinic-api/pkg/security"
)

type Service struct {
	accounts repository.AccountRepository
	hasher   security.PasswordHasher
	jwt      auth.JWTService
}

func NewService(accounts repository.AccountRepository, hasher security.PasswordHasher, jwt auth.JWTService) *Service {
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		jwt:      jwt,
	}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if account.PasswordHash == nil {
		return nil, apperrors.Unauthorized(nil)
	}
	if err := s.hasher.Compare(*account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	return s.issueToken(account)
}

// LoginWithKey authenticates by license key; the stored digest is
// deterministic so the key itself never touches the database.
func (s *Service) LoginWithKey(ctx context.Context, req *model.LoginWithKeyRequest) (*model.LoginResponse, error) {
	account, err := s.accounts.GetByLicenseKeyHash(ctx, security.HashLicenseKey(req.LicenseKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return s.issueToken(account)
}

func (s *Service) issueToken(account *model.Account) (*model.LoginResponse, error) {
	token, err := s.jwt.GenerateToken(account)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &model.LoginResponse{
		Token:   token,
		Account: account,
	}, nil
}
