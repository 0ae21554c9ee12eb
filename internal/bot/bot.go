package bot

import (
	"context"
	"fmt"
	"time"

	"iwacu/internal/config"
	"iwacu/internal/domain"
	"iwacu/internal/models"
	"iwacu/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Telegram is the slice of the Bot API the channel needs. A fake
// implementation stands in for it under test.
type Telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	GetSelf() tgbotapi.User
	StopReceivingUpdates()
}

const rateLimitReply = "⚠️ Vous envoyez des messages trop rapidement. Merci de patienter un instant."

// Bot is the Telegram delivery channel. It forwards every text message
// through the chat pipeline and sends the composed reply back, with a
// per-user rate limit in front.
type Bot struct {
	tg     Telegram
	cfg    *config.Config
	chat   domain.ChatService
	state  *service.StateService
	logger *zerolog.Logger
}

func NewBot(tg Telegram, cfg *config.Config, chat domain.ChatService, state *service.StateService, logger *zerolog.Logger) *Bot {
	return &Bot{
		tg:     tg,
		cfg:    cfg,
		chat:   chat,
		state:  state,
		logger: logger,
	}
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tg.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.tg.GetSelf().UserName).Msg("Authorized on account")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	requestID := uuid.New().String()
	l := b.logger.With().Str("request_id", requestID).Logger()
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		if update.Message == nil || update.Message.From == nil {
			return
		}

		userID := update.Message.From.ID
		sender := senderKey(userID)

		limit := b.cfg.Bot.RateLimitMessages
		window := time.Duration(b.cfg.Bot.RateLimitWindow) * time.Second
		if !b.state.CheckRateLimit(updateCtx, sender, limit, window) {
			l.Warn().Int64("user_id", userID).Msg("Rate limit exceeded")
			b.sendMessage(update.Message.Chat.ID, rateLimitReply)
			return
		}

		b.handleMessage(updateCtx, update)
	})
}

func (b *Bot) handleMessage(ctx context.Context, update tgbotapi.Update) {
	text := update.Message.Text
	if text == "" {
		return
	}

	result := b.chat.Chat(ctx, models.ChatMessage{
		Text:   text,
		Sender: senderKey(update.Message.From.ID),
	})

	b.sendMessage(update.Message.Chat.ID, result.Reply)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.tg.Send(msg); err != nil {
		b.logger.Error().Err(err).Int64("chat_id", chatID).Msg("send message")
	}
}

func (b *Bot) withRecovery(handler func()) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Msg("Recovered from panic in update handler")
		}
	}()
	handler()
}

// senderKey names a Telegram user in the shared sender namespace, so
// conversation logs and session state distinguish channels.
func senderKey(userID int64) string {
	return fmt.Sprintf("tg:%d", userID)
}
