package record

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
	"github.com/healthdesk/clinic-api/internal/service/event"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

type fakeRecordRepo struct {
	records map[uuid.UUID]*model.MedicalRecord
}

func (f *fakeRecordRepo) Create(_ context.Context, r *model.MedicalRecord) error {
	r.ID = uuid.New()
	f.records[r.ID] = r
	return nil
}

func (f *fakeRecordRepo) Get(_ context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeRecordRepo) Update(_ context.Context, r *model.MedicalRecord) error {
	if _, ok := f.records[r.ID]; !ok {
		return sql.ErrNoRows
	}
	f.records[r.ID] = r
	return nil
}

func (f *fakeRecordRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeAccounts struct {
	repository.AccountRepository
	doctors map[uuid.UUID]*model.Doctor
}

func (f *fakeAccounts) GetDoctor(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

type fakeDispatcher struct {
	events []*model.NotificationEvent
}

func (f *fakeDispatcher) Dispatch(_ context.Context, evt *model.NotificationEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type fakeOutbox struct {
	repository.OutboxRepository
	events []*model.OutboxEvent
}

func (f *fakeOutbox) Create(_ context.Context, evt *model.OutboxEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type fixture struct {
	svc        *Service
	dispatcher *fakeDispatcher
	outbox     *fakeOutbox
	doctorID   uuid.UUID
	patientID  uuid.UUID
}

func newFixture() *fixture {
	doctorID := uuid.New()
	repo := &fakeRecordRepo{records: make(map[uuid.UUID]*model.MedicalRecord)}
	dispatcher := &fakeDispatcher{}
	outbox := &fakeOutbox{}
	accounts := &fakeAccounts{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {
			Account:        model.Account{Base: model.Base{ID: doctorID}, Name: "Dr. Brown"},
			Specialization: "Cardiology",
		},
	}}
	svc := NewService(repo, accounts, dispatcher, event.NewService(outbox), zerolog.Nop())
	return &fixture{svc: svc, dispatcher: dispatcher, outbox: outbox, doctorID: doctorID, patientID: uuid.New()}
}

func (f *fixture) createRecord(t *testing.T) *model.MedicalRecord {
	t.Helper()
	rec, err := f.svc.CreateRecord(context.Background(), &model.CreateRecordRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Date:      "09.03.2026",
		Time:      "09:30",
	})
	require.NoError(t, err)
	return rec
}

func TestCreateRecord(t *testing.T) {
	f := newFixture()

	rec := f.createRecord(t)
	assert.Equal(t, model.RecordStatusOpen, rec.Status)
	assert.Equal(t, "2026-03-09", rec.Date)
}

func TestCreateRecordRejectsInvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateRecord(context.Background(), &model.CreateRecordRequest{
		PatientID: f.patientID,
		DoctorID:  f.doctorID,
		Date:      "garbage",
		Time:      "09:30",
	})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestCompleteRecord(t *testing.T) {
	f := newFixture()
	rec := f.createRecord(t)

	price := 150.0
	completed, err := f.svc.CompleteRecord(context.Background(), rec.ID, &model.CompleteRecordRequest{
		Description:   "Routine checkup",
		TreatmentPlan: "Rest",
		PaymentType:   model.PaymentTypePaid,
		Price:         &price,
		PhotoURLs:     []string{"/uploads/scan.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecordStatusCompleted, completed.Status)

	require.Len(t, f.dispatcher.events, 1)
	evt := f.dispatcher.events[0]
	assert.Equal(t, model.EventRecordCompleted, evt.Kind)
	assert.Equal(t, f.patientID, evt.RecipientID)
	assert.Equal(t, "Routine checkup", evt.Description)
	assert.Equal(t, "paid", evt.PaymentType)
	require.NotNil(t, evt.Price)
	assert.Equal(t, price, *evt.Price)
	assert.Equal(t, []string{"/uploads/scan.jpg"}, evt.PhotoURLs)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, "record.completed", f.outbox.events[0].EventType)
}

func TestCompleteRecordTwiceConflicts(t *testing.T) {
	f := newFixture()
	rec := f.createRecord(t)

	req := &model.CompleteRecordRequest{Description: "Checkup", PaymentType: model.PaymentTypeFree}
	_, err := f.svc.CompleteRecord(context.Background(), rec.ID, req)
	require.NoError(t, err)

	_, err = f.svc.CompleteRecord(context.Background(), rec.ID, req)
	assert.True(t, apperrors.IsConflict(err))
	assert.Len(t, f.dispatcher.events, 1)
}

func TestCompleteRecordNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CompleteRecord(context.Background(), uuid.New(), &model.CompleteRecordRequest{
		Description: "Checkup",
		PaymentType: model.PaymentTypeFree,
	})
	assert.True(t, apperrors.IsNotFound(err))
}
