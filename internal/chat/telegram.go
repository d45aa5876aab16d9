package chat

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/healthdesk/clinic-api/internal/model"
	apperrors "github.com/healthdesk/clinic-api/pkg/errors"
)

type Config struct {
	Token   string `mapstructure:"token"`
	Timeout time.Duration
}

type telegramSender struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramSender creates a chat sender backed by the Telegram bot API.
// The HTTP client timeout bounds every outbound send.
func NewTelegramSender(cfg Config) (Sender, *tgbotapi.BotAPI, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	bot, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &telegramSender{bot: bot}, bot, nil
}

func (s *telegramSender) SendText(_ context.Context, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func (s *telegramSender) SendPhoto(_ context.Context, chatID int64, photoURL string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	if _, err := s.bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send telegram photo: %w", err)
	}
	return nil
}

// BindingConfirmer consumes 4-digit codes received over chat.
type BindingConfirmer interface {
	Confirm(ctx context.Context, code string, chatID int64) (*model.ConfirmBindingResponse, error)
}

var codePattern = regexp.MustCompile(`^\d{4}$`)

// Poller long-polls Telegram for incoming messages and drives the
// identity-binding exchange: /start prompts for a code, a 4-digit
// message attempts to confirm it.
type Poller struct {
	bot     *tgbotapi.BotAPI
	binding BindingConfirmer
	logger  zerolog.Logger
}

func NewPoller(bot *tgbotapi.BotAPI, binding BindingConfirmer, logger zerolog.Logger) *Poller {
	return &Poller{
		bot:     bot,
		binding: binding,
		logger:  logger,
	}
}

func (p *Poller) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := p.bot.GetUpdatesChan(u)

	p.logger.Info().Str("bot", p.bot.Self.UserName).Msg("telegram poller started")

	for {
		select {
		case <-ctx.Done():
			p.bot.StopReceivingUpdates()
			p.logger.Info().Msg("telegram poller stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			p.handleMessage(ctx, update.Message)
		}
	}
}

func (p *Poller) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch {
	case msg.Text == "/start":
		p.reply(chatID, "Enter the 4-digit code to link your account:")
	case codePattern.MatchString(msg.Text):
		resp, err := p.binding.Confirm(ctx, msg.Text, chatID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				p.reply(chatID, "Code not found or already used.")
			} else {
				p.logger.Error().Err(err).Int64("chat_id", chatID).Msg("binding confirmation failed")
				p.reply(chatID, "Something went wrong, please try again.")
			}
			return
		}
		p.reply(chatID, resp.Message)
	}
}

func (p *Poller) reply(chatID int64, text string) {
	if _, err := p.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		p.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send reply")
	}
}
