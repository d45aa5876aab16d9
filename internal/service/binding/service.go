package binding

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

const (
	// DefaultCodeTTL bounds how long an unconsumed binding code stays valid.
	DefaultCodeTTL = 10 * time.Minute

	maxGenerateAttempts = 10
)

// Service implements the short-lived numeric-code exchange that binds an
// external chat identity to an account. Codes live in an in-process TTL
// store owned by this service; a process restart invalidates them all.
type Service struct {
	codes    *cache.Cache
	accounts repository.AccountRepository
	logger   zerolog.Logger

	// mu serializes code issue and consumption so a code can be
	// consumed exactly once.
	mu sync.Mutex
}

func NewService(accounts repository.AccountRepository, codeTTL time.Duration, logger zerolog.Logger) *Service {
	if codeTTL <= 0 {
		codeTTL = DefaultCodeTTL
	}
	return &Service{
		codes:    cache.New(codeTTL, codeTTL),
		accounts: accounts,
		logger:   logger,
	}
}

// RequestCode issues a fresh 4-digit code for the account. A code that
// collides with an outstanding one is regenerated, never overwritten.
func (s *Service) RequestCode(ctx context.Context, accountID uuid.UUID) (string, error) {
	if _, err := s.accounts.Get(ctx, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.NotFound("account", err)
		}
		return "", fmt.Errorf("failed to load account: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < maxGenerateAttempts; i++ {
		code, err := generateCode()
		if err != nil {
			return "", apperrors.Internal(err)
		}
		if _, exists := s.codes.Get(code); exists {
			continue
		}
		s.codes.Set(code, accountID, cache.DefaultExpiration)
		return code, nil
	}
	return "", apperrors.Internal(fmt.Errorf("could not allocate a unique binding code"))
}

// Confirm consumes a code and binds the chat identity to its account.
// The code is deleted only after the binding has been written, so a
// failed write leaves nothing mutated and the code still usable.
func (s *Service) Confirm(ctx context.Context, code string, chatID int64) (*model.ConfirmBindingResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, found := s.codes.Get(code)
	if !found {
		return nil, apperrors.NotFound("binding code", nil)
	}
	accountID := v.(uuid.UUID)

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.codes.Delete(code)
			return nil, apperrors.NotFound("account", err)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if err := s.accounts.SetTelegramID(ctx, accountID, &chatID); err != nil {
		return nil, fmt.Errorf("failed to bind chat identity: %w", err)
	}
	s.codes.Delete(code)

	s.logger.Info().
		Str("account_id", accountID.String()).
		Int64("chat_id", chatID).
		Msg("chat identity bound")

	return &model.ConfirmBindingResponse{
		AccountID: accountID,
		Name:      account.Name,
		Message:   fmt.Sprintf("Account %s linked successfully", account.Name),
	}, nil
}

// Unlink clears the bound chat identity unconditionally.
func (s *Service) Unlink(ctx context.Context, accountID uuid.UUID) error {
	if err := s.accounts.SetTelegramID(ctx, accountID, nil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound("account", err)
		}
		return fmt.Errorf("failed to unlink chat identity: %w", err)
	}
	return nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to generate binding code: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
