package auth

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	"github.com/healthdesk/clinic-api/pkg/auth"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
	"github.com/healthdesk/clinic-api/pkg/security"
)

type fakeAccounts struct {
	repository.AccountRepository
	byEmail   map[string]*model.Account
	byKeyHash map[string]*model.Account
}

func (f *fakeAccounts) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccounts) GetByLicenseKeyHash(_ context.Context, keyHash string) (*model.Account, error) {
	a, ok := f.byKeyHash[keyHash]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func newService(accounts *fakeAccounts) (*Service, security.PasswordHasher) {
	hasher := security.NewBcryptHasher(4)
	jwtSvc := auth.NewJWTService("test-secret", 1)
	return NewService(accounts, hasher, jwtSvc), hasher
}

func TestLogin(t *testing.T) {
	accounts := &fakeAccounts{byEmail: map[string]*model.Account{}, byKeyHash: map[string]*model.Account{}}
	svc, hasher := newService(accounts)

	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)
	addr := "anna@example.com"
	accounts.byEmail[addr] = &model.Account{
		Base:         model.Base{ID: uuid.New()},
		Name:         "Anna",
		Role:         model.AccountRoleStaff,
		Email:        &addr,
		PasswordHash: &hash,
	}

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: addr, Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Anna", resp.Account.Name)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: addr, Password: "wrong"})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)

	_, err = svc.Login(context.Background(), &model.LoginRequest{Email: "nobody@example.com", Password: "x"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUnauthorized, appErr.Code)
}

func TestLoginWithKey(t *testing.T) {
	accounts := &fakeAccounts{byEmail: map[string]*model.Account{}, byKeyHash: map[string]*model.Account{}}
	svc, _ := newService(accounts)

	key, err := security.GenerateLicenseKey()
	require.NoError(t, err)
	accounts.byKeyHash[security.HashLicenseKey(key)] = &model.Account{
		Base: model.Base{ID: uuid.New()},
		Name: "Anna",
		Role: model.AccountRolePatient,
	}

	resp, err := svc.LoginWithKey(context.Background(), &model.LoginWithKeyRequest{LicenseKey: key})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.LoginWithKey(context.Background(), &model.LoginWithKeyRequest{LicenseKey: "bogus"})
	assert.True(t, apperrors.IsNotFound(err))
}
