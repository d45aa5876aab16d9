package model

import (
	"github.com/google/uuid"
)

type EventKind string

const (
	EventBookingConfirmed EventKind = "booking_confirmed"
	EventRecordCompleted  EventKind = "record_completed"
)

// NotificationEvent is a transient value handed to the dispatcher.
// It is never persisted; delivery is best-effort on every channel.
type NotificationEvent struct {
	Kind           EventKind
	RecipientID    uuid.UUID
	DoctorName     string
	Specialization string
	Date           string
	Time           string

	// record_completed only
	Description   string
	TreatmentPlan string
	PaymentType   string
	Price         *float64
	PhotoURLs     []string
}
