package model

// MedicalCenter is a clinic location accounts and inpatient care belong to.
type MedicalCenter struct {
	Base
	Name    string `db:"name" json:"name"`
	Address string `db:"address" json:"address"`
	Phone   string `db:"phone" json:"phone,omitempty"`
}

type CreateMedCenterRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	Address string `json:"address" binding:"required,max=500"`
	Phone   string `json:"phone" binding:"omitempty,max=20"`
}
