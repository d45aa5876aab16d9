package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/healthdesk/clinic-api/internal/chat"
	"github.com/healthdesk/clinic-api/internal/email"
	"github.com/healthdesk/clinic-api/internal/model"
	"github.com/healthdesk/clinic-api/internal/repository"
)

// Dispatcher fans a notification event out to every channel the
// recipient has an address for. Channels are independent: a failure on
// one is logged and swallowed, and never blocks the other. Dispatch
// reports success once both attempts have been made; there is no retry
// queue, so a transient failure is a permanent loss for that event.
type Dispatcher interface {
	Dispatch(ctx context.Context, event *model.NotificationEvent) error
}

type service struct {
	accounts repository.AccountRepository
	emailSvc email.Sender
	chatSvc  chat.Sender
	logger   zerolog.Logger
}

func NewService(accounts repository.AccountRepository, emailSvc email.Sender, chatSvc chat.Sender, logger zerolog.Logger) Dispatcher {
	return &service{
		accounts: accounts,
		emailSvc: emailSvc,
		chatSvc:  chatSvc,
		logger:   logger,
	}
}

func (s *service) Dispatch(ctx context.Context, event *model.NotificationEvent) error {
	account, err := s.accounts.Get(ctx, event.RecipientID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("recipient_id", event.RecipientID.String()).
			Str("event_kind", string(event.Kind)).
			Msg("failed to resolve notification recipient")
		return nil
	}

	if account.Email != nil && *account.Email != "" {
		if err := s.sendEmail(ctx, *account.Email, account.Name, event); err != nil {
			s.logger.Error().Err(err).
				Str("channel", "email").
				Str("event_kind", string(event.Kind)).
				Msg("channel delivery failed")
		}
	}

	if account.TelegramID != nil {
		if err := s.sendChat(ctx, *account.TelegramID, event); err != nil {
			s.logger.Error().Err(err).
				Str("channel", "chat").
				Str("event_kind", string(event.Kind)).
				Msg("channel delivery failed")
		}
	}

	return nil
}

func (s *service) sendEmail(ctx context.Context, to, recipientName string, event *model.NotificationEvent) error {
	msg := &email.Message{To: to}

	switch event.Kind {
	case model.EventBookingConfirmed:
		msg.Subject = "Doctor appointment"
		msg.HTML = fmt.Sprintf(`
			<html><body>
			<h2>You have booked an appointment!</h2>
			<p><b>Doctor:</b> %s</p>
			<p><b>Specialization:</b> %s</p>
			<p><b>Date:</b> %s</p>
			<p><b>Time:</b> %s</p>
			</body></html>`,
			event.DoctorName, event.Specialization, event.Date, event.Time)
	case model.EventRecordCompleted:
		msg.Subject = "Visit summary"
		msg.HTML = fmt.Sprintf(`
			<html><body>
			<h2>Your visit is complete!</h2>
			<p><b>Patient:</b> %s</p>
			<p><b>Doctor:</b> %s</p>
			<p><b>Specialization:</b> %s</p>
			<p><b>Date:</b> %s</p>
			<p><b>Time:</b> %s</p>
			<p><b>Description:</b> %s</p>
			<p><b>Treatment plan:</b> %s</p>
			<p><b>Payment:</b> %s</p>
			<p><b>Price:</b> %s</p>
			<p><b>Photos:</b> attached</p>
			</body></html>`,
			recipientName, event.DoctorName, event.Specialization, event.Date, event.Time,
			event.Description, event.TreatmentPlan, event.PaymentType, formatPrice(event.Price))
		msg.Attachments = attachmentPaths(event.PhotoURLs)
	default:
		return fmt.Errorf("unsupported event kind: %s", event.Kind)
	}

	return s.emailSvc.Send(ctx, msg)
}

func (s *service) sendChat(ctx context.Context, chatID int64, event *model.NotificationEvent) error {
	var text string

	switch event.Kind {
	case model.EventBookingConfirmed:
		text = fmt.Sprintf(
			"You have booked an appointment!\nDoctor: %s\nSpecialization: %s\nDate: %s\nTime: %s",
			event.DoctorName, event.Specialization, event.Date, event.Time)
	case model.EventRecordCompleted:
		text = fmt.Sprintf(
			"Your visit is complete!\nDoctor: %s\nSpecialization: %s\nDate: %s\nTime: %s\nDescription: %s\nTreatment plan: %s\nPayment: %s\nPrice: %s",
			event.DoctorName, event.Specialization, event.Date, event.Time,
			event.Description, event.TreatmentPlan, event.PaymentType, formatPrice(event.Price))
	default:
		return fmt.Errorf("unsupported event kind: %s", event.Kind)
	}

	if err := s.chatSvc.SendText(ctx, chatID, text); err != nil {
		return err
	}

	// Each photo goes out as its own message; a failed photo does not
	// stop the remaining ones.
	for _, url := range event.PhotoURLs {
		if err := s.chatSvc.SendPhoto(ctx, chatID, url); err != nil {
			s.logger.Error().Err(err).
				Str("channel", "chat").
				Str("photo_url", url).
				Msg("photo delivery failed")
		}
	}
	return nil
}

func formatPrice(price *float64) string {
	if price == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *price)
}

// Photo refs arrive as URL-style upload paths; the mail channel attaches
// the underlying local files.
func attachmentPaths(urls []string) []string {
	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		paths = append(paths, strings.TrimPrefix(u, "/"))
	}
	return paths
}
