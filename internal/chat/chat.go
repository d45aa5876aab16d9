package chat

import (
	"context"
)

// Sender is the outbound chat channel. Implementations perform
// synchronous best-effort sends bounded by a client-side timeout.
type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photoURL string) error
}

type noopSender struct{}

// NewNoopSender returns a Sender that drops every message. Used when no
// bot token is configured.
func NewNoopSender() Sender { return noopSender{} }

func (noopSender) SendText(context.Context, int64, string) error  { return nil }
func (noopSender) SendPhoto(context.Context, int64, string) error { return nil }
