package notify

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Notifier delivers a text message to the salon operator.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages to a fixed chat through the
// Telegram Bot API. Sends are rate limited to stay inside the Bot
// API flood limits.
type TelegramNotifier struct {
	api     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	logger  *zerolog.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zerolog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("bot", api.Self.UserName).Msg("telegram notifier ready")
	return &TelegramNotifier{
		api:     api,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(20), 30),
		logger:  logger,
	}, nil
}

func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		n.logger.Error().Err(err).Msg("telegram send failed")
		return err
	}
	return nil
}
