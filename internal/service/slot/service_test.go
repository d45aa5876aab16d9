package slot

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

type slotKey struct {
	doctorID uuid.UUID
	date     string
	time     string
}

type fakeSlotRepo struct {
	slots map[uuid.UUID]*model.Slot
	keys  map[slotKey]uuid.UUID
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{
		slots: make(map[uuid.UUID]*model.Slot),
		keys:  make(map[slotKey]uuid.UUID),
	}
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*model.Slot) ([]*model.Slot, error) {
	inserted := make([]*model.Slot, 0, len(slots))
	for _, s := range slots {
		key := slotKey{s.DoctorID, s.Date, s.Time}
		if _, exists := f.keys[key]; exists {
			continue
		}
		s.ID = uuid.New()
		f.slots[s.ID] = s
		f.keys[key] = s.ID
		inserted = append(inserted, s)
	}
	return inserted, nil
}

func (f *fakeSlotRepo) Get(_ context.Context, id uuid.UUID) (*model.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeSlotRepo) ListFree(_ context.Context, doctorID uuid.UUID, fromDate string) ([]*model.Slot, error) {
	var out []*model.Slot
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Status == model.SlotStatusFree && s.Date >= fromDate {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) List(_ context.Context, filters *model.SlotFilters) ([]*model.SlotWithOccupant, error) {
	var out []*model.SlotWithOccupant
	for _, s := range f.slots {
		if s.DoctorID != filters.DoctorID {
			continue
		}
		out = append(out, &model.SlotWithOccupant{Slot: *s, OccupantName: model.UnknownPatientName})
	}
	return out, nil
}

func (f *fakeSlotRepo) Book(_ context.Context, id, occupantID uuid.UUID, reason *string) (bool, error) {
	s, ok := f.slots[id]
	if !ok || s.Status != model.SlotStatusFree {
		return false, nil
	}
	s.OccupantID = &occupantID
	s.Reason = reason
	s.Status = model.SlotStatusBooked
	return true, nil
}

func (f *fakeSlotRepo) Reassign(_ context.Context, id, occupantID uuid.UUID, reason *string) error {
	s, ok := f.slots[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.OccupantID = &occupantID
	s.Reason = reason
	s.Status = model.SlotStatusBooked
	return nil
}

func (f *fakeSlotRepo) Clear(_ context.Context, id uuid.UUID) error {
	s, ok := f.slots[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.OccupantID = nil
	s.Reason = nil
	s.Status = model.SlotStatusFree
	return nil
}

func (f *fakeSlotRepo) Update(_ context.Context, slot *model.Slot) error {
	if _, ok := f.slots[slot.ID]; !ok {
		return sql.ErrNoRows
	}
	f.slots[slot.ID] = slot
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.slots[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.slots, id)
	return nil
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
	repo       *fakeSlotRepo
	dispatcher *fakeDispatcher
	outbox     *fakeOutbox
	doctorID   uuid.UUID
}

func newFixture() *fixture {
	doctorID := uuid.New()
	repo := newFakeSlotRepo()
	dispatcher := &fakeDispatcher{}
	outbox := &fakeOutbox{}
	accounts := &fakeAccounts{doctors: map[uuid.UUID]*model.Doctor{
		doctorID: {
			Account:        model.Account{Base: model.Base{ID: doctorID}, Name: "Dr. Brown"},
			Specialization: "Cardiology",
		},
	}}
	svc := NewService(repo, accounts, dispatcher, event.NewService(outbox), zerolog.Nop())
	return &fixture{svc: svc, repo: repo, dispatcher: dispatcher, outbox: outbox, doctorID: doctorID}
}

func (f *fixture) createSlot(t *testing.T, date, tm string) *model.Slot {
	t.Helper()
	slots, err := f.svc.CreateSlots(context.Background(), &model.CreateSlotsRequest{
		DoctorID: f.doctorID,
		Slots:    []model.SlotTime{{Date: date, Time: tm}},
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	return slots[0]
}

func TestCreateSlotsNormalizesDates(t *testing.T) {
	f := newFixture()

	slots, err := f.svc.CreateSlots(context.Background(), &model.CreateSlotsRequest{
		DoctorID: f.doctorID,
		Slots:    []model.SlotTime{{Date: "09.03.2026", Time: "09:30"}},
	})
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2026-03-09", slots[0].Date)
	assert.Equal(t, model.SlotStatusFree, slots[0].Status)
}

func TestCreateSlotsRejectsInvalidDate(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateSlots(context.Background(), &model.CreateSlotsRequest{
		DoctorID: f.doctorID,
		Slots:    []model.SlotTime{{Date: "garbage", Time: "09:30"}},
	})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestCreateSlotsSkipsDuplicates(t *testing.T) {
	f := newFixture()
	f.createSlot(t, "2026-03-09", "09:30")

	slots, err := f.svc.CreateSlots(context.Background(), &model.CreateSlotsRequest{
		DoctorID: f.doctorID,
		Slots: []model.SlotTime{
			{Date: "2026-03-09", Time: "09:30"},
			{Date: "2026-03-09", Time: "10:00"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, f.repo.slots, 2)

	// The duplicate never got a row, so it never comes back either.
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].Time)
	_, err = f.svc.GetSlot(context.Background(), slots[0].ID)
	assert.NoError(t, err)
}

func TestBookSlot(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")
	occupantID := uuid.New()

	booked, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: occupantID})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, booked.Status)
	require.NotNil(t, booked.OccupantID)
	assert.Equal(t, occupantID, *booked.OccupantID)

	require.Len(t, f.dispatcher.events, 1)
	evt := f.dispatcher.events[0]
	assert.Equal(t, model.EventBookingConfirmed, evt.Kind)
	assert.Equal(t, occupantID, evt.RecipientID)
	assert.Equal(t, "Dr. Brown", evt.DoctorName)
	assert.Equal(t, "Cardiology", evt.Specialization)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, "slot.booked", f.outbox.events[0].EventType)
}

func TestBookSlotConflict(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: uuid.New()})
	require.NoError(t, err)

	_, err = f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: uuid.New()})
	assert.True(t, apperrors.IsConflict(err))

	// Only the first booking produced a notification.
	assert.Len(t, f.dispatcher.events, 1)
}

func TestBookSlotReassign(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: uuid.New()})
	require.NoError(t, err)

	newOccupant := uuid.New()
	booked, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: newOccupant, Reassign: true})
	require.NoError(t, err)
	assert.Equal(t, newOccupant, *booked.OccupantID)

	// Reassignment re-emits the confirmation to the new occupant.
	require.Len(t, f.dispatcher.events, 2)
	assert.Equal(t, newOccupant, f.dispatcher.events[1].RecipientID)
}

func TestBookSlotNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.BookSlot(context.Background(), uuid.New(), &model.BookSlotRequest{OccupantID: uuid.New()})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, f.dispatcher.events)
}

func TestUpdateSlotBookedRequiresOccupant(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	booked := model.SlotStatusBooked
	_, err := f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{Status: &booked})
	assert.True(t, apperrors.IsInvalidInput(err))
}

func TestUpdateSlotToBookedNotifies(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	occupantID := uuid.New()
	booked := model.SlotStatusBooked
	updated, err := f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{
		Status:     &booked,
		OccupantID: &occupantID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusBooked, updated.Status)

	// Booking through the update path is still a booking.
	require.Len(t, f.dispatcher.events, 1)
	assert.Equal(t, model.EventBookingConfirmed, f.dispatcher.events[0].Kind)
	assert.Equal(t, occupantID, f.dispatcher.events[0].RecipientID)
	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, "slot.booked", f.outbox.events[0].EventType)
}

func TestUpdateSlotOccupantSwapConflicts(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")
	firstOccupant := uuid.New()

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: firstOccupant})
	require.NoError(t, err)

	newOccupant := uuid.New()
	_, err = f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{OccupantID: &newOccupant})
	assert.True(t, apperrors.IsConflict(err))

	got, err := f.svc.GetSlot(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, firstOccupant, *got.OccupantID)
	assert.Len(t, f.dispatcher.events, 1)
}

func TestUpdateSlotSameOccupantKeepsBooking(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")
	occupantID := uuid.New()

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: occupantID})
	require.NoError(t, err)

	reason := "follow-up"
	updated, err := f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{
		OccupantID: &occupantID,
		Reason:     &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, "follow-up", *updated.Reason)

	// No new confirmation: the occupant did not change.
	assert.Len(t, f.dispatcher.events, 1)
}

func TestUpdateSlotClearData(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: uuid.New()})
	require.NoError(t, err)

	updated, err := f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{ClearData: true})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusFree, updated.Status)
	assert.Nil(t, updated.OccupantID)
	assert.Nil(t, updated.Reason)
}

func TestUpdateSlotFreeDropsOccupant(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	occupantID := uuid.New()
	free := model.SlotStatusFree
	updated, err := f.svc.UpdateSlot(context.Background(), slot.ID, &model.UpdateSlotRequest{
		Status:     &free,
		OccupantID: &occupantID,
	})
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusFree, updated.Status)
	assert.Nil(t, updated.OccupantID)
}

func TestClearSlotIsSilent(t *testing.T) {
	f := newFixture()
	slot := f.createSlot(t, "2026-03-09", "09:30")

	_, err := f.svc.BookSlot(context.Background(), slot.ID, &model.BookSlotRequest{OccupantID: uuid.New()})
	require.NoError(t, err)
	notified := len(f.dispatcher.events)

	cleared, err := f.svc.ClearSlot(context.Background(), slot.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SlotStatusFree, cleared.Status)
	assert.Nil(t, cleared.OccupantID)

	// Clearing never notifies anyone.
	assert.Len(t, f.dispatcher.events, notified)
}

func TestListFreeSlotsFiltersByDate(t *testing.T) {
	f := newFixture()
	f.createSlot(t, "2026-03-08", "09:30")
	future := f.createSlot(t, "2026-03-10", "09:30")

	slots, err := f.svc.ListFreeSlots(context.Background(), f.doctorID, "09.03.2026")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, future.ID, slots[0].ID)
}
