package model

import (
	"github.com/google/uuid"
)

type InpatientCare struct {
	Base
	MedCenterID uuid.UUID `db:"med_center_id" json:"med_center_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	Ward        string    `db:"ward" json:"ward"`
	Description string    `db:"description" json:"description,omitempty"`
	Active      bool      `db:"active" json:"active"`
}

type CreateInpatientCareRequest struct {
	PatientID   uuid.UUID `json:"patient_id" binding:"required"`
	Ward        string    `json:"ward" binding:"required,max=50"`
	Description string    `json:"description" binding:"max=2000"`
}
