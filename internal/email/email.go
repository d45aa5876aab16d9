package email

import (
	"context"
)

// Message is a single outbound email. Attachments are local file paths.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []string
}

type Sender interface {
	Send(ctx context.Context, msg *Message) error
}
