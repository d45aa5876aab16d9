package notification

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdesk/clinic-api/internal/email"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
)

type fakeAccounts struct {
	repository.AccountRepository
	accounts map[uuid.UUID]*model.Account
}

func (f *fakeAccounts) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	a, ok := f.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

type fakeEmail struct {
	sent []*email.Message
	err  error
}

func (f *fakeEmail) Send(_ context.Context, msg *email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeChat struct {
	texts  []string
	photos []string
	err    error
}

func (f *fakeChat) SendText(_ context.Context, _ int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *fakeChat) SendPhoto(_ context.Context, _ int64, photoURL string) error {
	if f.err != nil {
		return f.err
	}
	f.photos = append(f.photos, photoURL)
	return nil
}

func bookingEvent(recipient uuid.UUID) *model.NotificationEvent {
	return &model.NotificationEvent{
		Kind:           model.EventBookingConfirmed,
		RecipientID:    recipient,
		DoctorName:     "Dr. Brown",
		Specialization: "Cardiology",
		Date:           "2026-03-09",
		Time:           "09:30",
	}
}

func TestDispatchBothChannels(t *testing.T) {
	addr := "anna@example.com"
	chatID := int64(42)
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna", Email: &addr, TelegramID: &chatID}
	accounts := &fakeAccounts{accounts: map[uuid.UUID]*model.Account{account.ID: account}}
	emailSvc := &fakeEmail{}
	chatSvc := &fakeChat{}

	svc := NewService(accounts, emailSvc, chatSvc, zerolog.Nop())

	err := svc.Dispatch(context.Background(), bookingEvent(account.ID))
	require.NoError(t, err)

	require.Len(t, emailSvc.sent, 1)
	assert.Equal(t, addr, emailSvc.sent[0].To)
	assert.Contains(t, emailSvc.sent[0].HTML, "Dr. Brown")

	require.Len(t, chatSvc.texts, 1)
	assert.Contains(t, chatSvc.texts[0], "Cardiology")
}

func TestDispatchSurvivesChannelFailure(t *testing.T) {
	addr := "anna@example.com"
	chatID := int64(42)
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna", Email: &addr, TelegramID: &chatID}
	accounts := &fakeAccounts{accounts: map[uuid.UUID]*model.Account{account.ID: account}}
	emailSvc := &fakeEmail{err: errors.New("smtp down")}
	chatSvc := &fakeChat{}

	svc := NewService(accounts, emailSvc, chatSvc, zerolog.Nop())

	err := svc.Dispatch(context.Background(), bookingEvent(account.ID))
	assert.NoError(t, err)

	// The chat channel still went out.
	assert.Len(t, chatSvc.texts, 1)
}

func TestDispatchSkipsMissingAddresses(t *testing.T) {
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna"}
	accounts := &fakeAccounts{accounts: map[uuid.UUID]*model.Account{account.ID: account}}
	emailSvc := &fakeEmail{}
	chatSvc := &fakeChat{}

	svc := NewService(accounts, emailSvc, chatSvc, zerolog.Nop())

	err := svc.Dispatch(context.Background(), bookingEvent(account.ID))
	assert.NoError(t, err)
	assert.Empty(t, emailSvc.sent)
	assert.Empty(t, chatSvc.texts)
}

func TestDispatchUnknownRecipient(t *testing.T) {
	accounts := &fakeAccounts{accounts: map[uuid.UUID]*model.Account{}}
	emailSvc := &fakeEmail{}
	chatSvc := &fakeChat{}

	svc := NewService(accounts, emailSvc, chatSvc, zerolog.Nop())

	err := svc.Dispatch(context.Background(), bookingEvent(uuid.New()))
	assert.NoError(t, err)
	assert.Empty(t, emailSvc.sent)
	assert.Empty(t, chatSvc.texts)
}

func TestCompletionEventCarriesDetails(t *testing.T) {
	addr := "anna@example.com"
	chatID := int64(42)
	account := &model.Account{Base: model.Base{ID: uuid.New()}, Name: "Anna", Email: &addr, TelegramID: &chatID}
	accounts := &fakeAccounts{accounts: map[uuid.UUID]*model.Account{account.ID: account}}
	emailSvc := &fakeEmail{}
	chatSvc := &fakeChat{}

	svc := NewService(accounts, emailSvc, chatSvc, zerolog.Nop())

	price := 150.0
	err := svc.Dispatch(context.Background(), &model.NotificationEvent{
		Kind:           model.EventRecordCompleted,
		RecipientID:    account.ID,
		DoctorName:     "Dr. Brown",
		Specialization: "Cardiology",
		Date:           "2026-03-09",
		Time:           "09:30",
		Description:    "Routine checkup",
		TreatmentPlan:  "Rest",
		PaymentType:    "paid",
		Price:          &price,
		PhotoURLs:      []string{"/uploads/scan1.jpg", "/uploads/scan2.jpg"},
	})
	require.NoError(t, err)

	require.Len(t, emailSvc.sent, 1)
	assert.Contains(t, emailSvc.sent[0].HTML, "Routine checkup")
	assert.Equal(t, []string{"uploads/scan1.jpg", "uploads/scan2.jpg"}, emailSvc.sent[0].Attachments)

	require.Len(t, chatSvc.texts, 1)
	assert.Contains(t, chatSvc.texts[0], "150.00")
	assert.Equal(t, []string{"/uploads/scan1.jpg", "/uploads/scan2.jpg"}, chatSvc.photos)
}
