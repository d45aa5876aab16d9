package model

import (
	"github.com/google/uuid"
)

type AccountRole string

const (
	AccountRolePatient AccountRole = "patient"
	AccountRoleDoctor  AccountRole = "doctor"
	AccountRoleStaff   AccountRole = "staff"
)

// Account is the base identity row. Doctor-only attributes live in
// DoctorProfile, keyed by account id, rather than as nullable columns here.
type Account struct {
	Base
	MedCenterID    uuid.UUID   `db:"med_center_id" json:"med_center_id"`
	Name           string      `db:"name" json:"name"`
	Role           AccountRole `db:"role" json:"role"`
	Email          *string     `db:"email" json:"email,omitempty"`
	TelegramID     *int64      `db:"telegram_id" json:"telegram_id,omitempty"`
	PasswordHash   *string     `db:"password_hash" json:"-"`
	LicenseKeyHash *string     `db:"license_key_hash" json:"-"`
}

// DoctorProfile is the doctor-capability extension record for an account.
type DoctorProfile struct {
	AccountID      uuid.UUID `db:"account_id" json:"account_id"`
	Specialization string    `db:"specialization" json:"specialization"`
	Cabinet        string    `db:"cabinet" json:"cabinet,omitempty"`
}

// Doctor is an account joined with its doctor profile.
type Doctor struct {
	Account
	Specialization string `db:"specialization" json:"specialization"`
	Cabinet        string `db:"cabinet" json:"cabinet,omitempty"`
}

type CreateAccountRequest struct {
	MedCenterID    uuid.UUID   `json:"med_center_id" binding:"required"`
	Name           string      `json:"name" binding:"required,max=200"`
	Role           AccountRole `json:"role" binding:"required,oneof=patient doctor staff"`
	Email          *string     `json:"email" binding:"omitempty,email"`
	Password       *string     `json:"password" binding:"omitempty,min=8"`
	Specialization *string     `json:"specialization"`
	Cabinet        *string     `json:"cabinet"`
}

type UpdateAccountRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=200"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Specialization *string `json:"specialization"`
	Cabinet        *string `json:"cabinet"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginWithKeyRequest struct {
	LicenseKey string `json:"license_key" binding:"required"`
}

type LoginResponse struct {
	Token   string   `json:"token"`
	Account *Account `json:"account"`
}
