package model

import (
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// OutboxEvent is a domain event staged in the same transactional store
// as the data it describes, published to the broker by the worker.
type OutboxEvent struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	EventType    string       `db:"event_type" json:"event_type"`
	Payload      []byte       `db:"payload" json:"payload"`
	Status       OutboxStatus `db:"status" json:"status"`
	ErrorMessage *string      `db:"error_message" json:"error_message,omitempty"`
	ProcessedAt  *time.Time   `db:"processed_at" json:"processed_at,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}
