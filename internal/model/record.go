package model

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type RecordStatus string

const (
	RecordStatusOpen      RecordStatus = "open"
	RecordStatusCompleted RecordStatus = "completed"
)

type PaymentType string

const (
	PaymentTypePaid PaymentType = "paid"
	PaymentTypeFree PaymentType = "free"
)

// MedicalRecord captures the outcome of a visit. Completing a record is
// what triggers the record_completed notification.
type MedicalRecord struct {
	Base
	PatientID     uuid.UUID      `db:"patient_id" json:"patient_id"`
	DoctorID      uuid.UUID      `db:"doctor_id" json:"doctor_id"`
	Date          string         `db:"date" json:"date"`
	Time          string         `db:"time" json:"time"`
	Description   string         `db:"description" json:"description"`
	TreatmentPlan string         `db:"treatment_plan" json:"treatment_plan"`
	PaymentType   PaymentType    `db:"payment_type" json:"payment_type"`
	Price         *float64       `db:"price" json:"price,omitempty"`
	PhotoURLs     pq.StringArray `db:"photo_urls" json:"photo_urls"`
	Status        RecordStatus   `db:"status" json:"status"`
}

type CreateRecordRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" binding:"required"`
	Date      string    `json:"date" binding:"required,slotdate"`
	Time      string    `json:"time" binding:"required,slottime"`
}

type CompleteRecordRequest struct {
	Description   string      `json:"description" binding:"required"`
	TreatmentPlan string      `json:"treatment_plan"`
	PaymentType   PaymentType `json:"payment_type" binding:"required,oneof=paid free"`
	Price         *float64    `json:"price" binding:"omitempty,gte=0"`
	PhotoURLs     []string    `json:"photo_urls"`
}
