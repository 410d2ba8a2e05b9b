package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/mymmrac/telego"

	"github.com/noteforge/noteforge/internal/logger"
	"github.com/noteforge/noteforge/internal/schedule"
)

const timeRound = time.Millisecond

// messageSender is the slice of the telego bot API the notifier needs.
type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramConfig contains configuration for the Telegram notifier.
type TelegramConfig struct {
	Token  string
	ChatID int64
}

// Telegram sends batch summaries to a Telegram chat.
type Telegram struct {
	bot    messageSender
	chatID int64
	logger *logger.Logger
}

// NewTelegram creates the notifier and validates the token against the API.
func NewTelegram(cfg TelegramConfig, log *logger.Logger) (*Telegram, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}
	if cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram chat id is required")
	}

	bot, err := telego.NewBot(cfg.Token, telego.WithDiscardLogger())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}

	return &Telegram{bot: bot, chatID: cfg.ChatID, logger: log}, nil
}

// BatchFinished sends the summary to the configured chat.
func (t *Telegram) BatchFinished(ctx context.Context, summary schedule.Summary) error {
	params := &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: t.chatID},
		Text:   formatSummary(summary),
	}
	if _, err := t.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	t.logger.Debug("telegram notification sent",
		logger.Field{Key: "chat_id", Value: t.chatID},
		logger.Field{Key: "batch_id", Value: summary.BatchID})
	return nil
}
