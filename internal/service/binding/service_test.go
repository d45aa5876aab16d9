package binding

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

type fakeAccounts struct {
	repository.AccountRepository
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccounts(accounts ...*model.Account) *fakeAccounts {
	f := &fakeAccounts{accounts: make(map[uuid.UUID]*model.Account)}
	for _, a := range accounts {
		f.accounts[a.ID] = a
	}
	return f
}

func (f *fakeAccounts) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeAccounts) SetTelegramID(_ context.Context, id uuid.UUID, telegramID *int64) error {
	a, ok := f.accounts[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.TelegramID = telegramID
	return nil
}

func TestRequestAndConfirm(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna"}
	accounts := newFakeAccounts(account)
	svc := NewService(accounts, time.Minute, zerolog.Nop())

	code, err := svc.RequestCode(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Len(t, code, 4)

	resp, err := svc.Confirm(context.Background(), code, 555)
	require.NoError(t, err)
	assert.Equal(t, account.ID, resp.AccountID)
	assert.Equal(t, "Anna", resp.Name)
	assert.Contains(t, resp.Message, "Anna")

	require.NotNil(t, account.TelegramID)
	assert.Equal(t, int64(555), *account.TelegramID)
}

func TestConfirmIsSingleUse(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna"}
	accounts := newFakeAccounts(account)
	svc := NewService(accounts, time.Minute, zerolog.Nop())

	code, err := svc.RequestCode(context.Background(), account.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), code, 555)
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), code, 777)
	assert.True(t, apperrors.IsNotFound(err))

	// The first binding survives the failed replay.
	require.NotNil(t, account.TelegramID)
	assert.Equal(t, int64(555), *account.TelegramID)
}

func TestConfirmUnknownCode(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}}
	accounts := newFakeAccounts(account)
	svc := NewService(accounts, time.Minute, zerolog.Nop())

	_, err := svc.Confirm(context.Background(), "0000", 555)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Nil(t, account.TelegramID)
}

func TestRequestCodeUnknownAccount(t *testing.T) {
	svc := NewService(newFakeAccounts(), time.Minute, zerolog.Nop())

	_, err := svc.RequestCode(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUnlink(t *testing.T) {
	chatID := int64(42)
	account := &model.Account{Base: model.Base{ID: uuid.New()}, TelegramID: &chatID}
	accounts := newFakeAccounts(account)
	svc := NewService(accounts, time.Minute, zerolog.Nop())

	require.NoError(t, svc.Unlink(context.Background(), account.ID))
	assert.Nil(t, account.TelegramID)
}

func TestCodesExpire(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}}
	accounts := newFakeAccounts(account)
	svc := NewService(accounts, 10*time.Millisecond, zerolog.Nop())

	code, err := svc.RequestCode(context.Background(), account.ID)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = svc.Confirm(context.Background(), code, 555)
	assert.True(t, apperrors.IsNotFound(err))
}
