package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// Slot dates are stored as zero-padded ISO strings so that lexicographic
// comparison in SQL matches chronological order. Locale-formatted input
// (DD.MM.YYYY) is accepted at the boundary and normalized before it
// reaches any query or comparison.
const (
	SlotDateFormat       = "2006-01-02"
	SlotDateFormatLocale = "02.01.2006"
	SlotTimeFormat       = "15:04"
)

// UnknownPatientName is the sentinel returned for slots whose occupant
// cannot be resolved against the account directory.
const UnknownPatientName = "unknown patient"

// Slot is a bookable doctor/date/time unit. DoctorID, Date and Time are
// immutable after creation; only occupant, reason and status mutate.
type Slot struct {
	Base
	DoctorID   uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	Date       string     `db:"date" json:"date"`
	Time       string     `db:"time" json:"time"`
	OccupantID *uuid.UUID `db:"occupant_id" json:"occupant_id,omitempty"`
	Reason     *string    `db:"reason" json:"reason,omitempty"`
	Status     SlotStatus `db:"status" json:"status"`
}

// SlotWithOccupant is a listing row enriched with the occupant's display name.
type SlotWithOccupant struct {
	Slot
	OccupantName string `db:"occupant_name" json:"occupant_name"`
}

type SlotTime struct {
	Date string `json:"date" binding:"required,slotdate"`
	Time string `json:"time" binding:"required,slottime"`
}

type CreateSlotsRequest struct {
	DoctorID uuid.UUID  `json:"doctor_id" binding:"required"`
	Slots    []SlotTime `json:"slots" binding:"required,min=1,dive"`
}

type BookSlotRequest struct {
	OccupantID uuid.UUID `json:"occupant_id" binding:"required"`
	Reason     *string   `json:"reason"`
	Reassign   bool      `json:"reassign"`
}

type UpdateSlotRequest struct {
	Status     *SlotStatus `json:"status"`
	OccupantID *uuid.UUID  `json:"occupant_id"`
	Reason     *string     `json:"reason"`
	ClearData  bool        `json:"clear_data"`
}

type SlotFilters struct {
	DoctorID uuid.UUID
	FromDate string
	ToDate   string
	Status   SlotStatus
}

// ParseSlotDate normalizes a date string to the canonical format,
// accepting both ISO and locale input.
func ParseSlotDate(s string) (string, error) {
	if t, err := time.Parse(SlotDateFormat, s); err == nil {
		return t.Format(SlotDateFormat), nil
	}
	t, err := time.Parse(SlotDateFormatLocale, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected %s or %s", s, SlotDateFormat, SlotDateFormatLocale)
	}
	return t.Format(SlotDateFormat), nil
}

// ParseSlotTime validates and normalizes an HH:MM time string.
func ParseSlotTime(s string) (string, error) {
	t, err := time.Parse(SlotTimeFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Format(SlotTimeFormat), nil
}
