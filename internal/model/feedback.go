package model

import (
	"github.com/google/uuid"
)

type FeedbackStatus string

const (
	FeedbackStatusPending  FeedbackStatus = "pending"
	FeedbackStatusApproved FeedbackStatus = "approved"
	FeedbackStatusRejected FeedbackStatus = "rejected"
)

type Feedback struct {
	Base
	AccountID    uuid.UUID      `db:"account_id" json:"account_id"`
	Text         string         `db:"text" json:"text"`
	Status       FeedbackStatus `db:"status" json:"status"`
	RejectReason *string        `db:"reject_reason" json:"reject_reason,omitempty"`
}

type CreateFeedbackRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
	Text      string    `json:"text" binding:"required,max=2000"`
}

type RejectFeedbackRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
