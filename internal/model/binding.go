package model

import (
	"github.com/google/uuid"
)

// BindingCode is a one-time 4-digit secret proving control of a chat
// identity. Codes live only in the in-process TTL store.
type BindingCode struct {
	Code      string    `json:"code"`
	AccountID uuid.UUID `json:"account_id"`
}

type RequestBindingCodeRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
}

type ConfirmBindingRequest struct {
	Code   string `json:"code" binding:"required,len=4,numeric"`
	ChatID int64  `json:"chat_id" binding:"required"`
}

type ConfirmBindingResponse struct {
	AccountID uuid.UUID `json:"account_id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
}

type UnlinkBindingRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
}
