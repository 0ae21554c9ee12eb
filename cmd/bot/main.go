package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"iwacu/internal/bot"
	"iwacu/internal/config"
	"iwacu/internal/domain"
	"iwacu/internal/events"
	"iwacu/internal/logging"
	"iwacu/internal/models"
	"iwacu/internal/nlp"
	"iwacu/internal/refdata"
	"iwacu/internal/repository"
	"iwacu/internal/service"
	"iwacu/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	if !cfg.Telegram.Enabled {
		logger.Error().Msg("Telegram is disabled in config; nothing to run")
		return os.ErrInvalid
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.ConversationLog), 0o755); err != nil {
		logger.Error().Err(err).Msg("create conversation log directory")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := service.SystemClock{}

	eventBus := events.NewEventBus()
	conversationLog := storage.NewConversationLog(cfg.Storage.ConversationLog, clock, &logger)
	subscribeConversationEvents(eventBus, conversationLog, &logger)

	reader := refdata.NewReader(cfg.Data, &logger)
	info := service.NewInfoService(reader, clock)
	chatService := service.NewChatService(nlp.NewClassifier(), info, eventBus, &logger)

	redisClient, stateService := initStateService(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	return startBot(ctx, cfg, chatService, stateService, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	return cfg, logger, closer, nil
}

// initStateService wires the Redis-backed session repository with an
// in-memory fallback so the bot keeps answering when Redis is down.
func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	ttl := time.Duration(models.DefaultSessionTTL) * time.Second
	primaryRepo := repository.NewRedisStateRepository(redisClient, ttl)
	fallbackRepo := repository.NewMemoryStateRepository(ttl)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startBot(ctx context.Context, cfg *config.Config, chatService *service.ChatService, stateService *service.StateService, logger *zerolog.Logger) error {
	if cfg.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		logger.Error().Msg("Set the bot token in config.yaml")
		return os.ErrInvalid
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("create bot API")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	telegramBot := bot.NewBot(bot.NewBotWrapper(botAPI), cfg, chatService, stateService, logger)

	logger.Info().Msg("Bot started...")
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// subscribeConversationEvents bridges the event bus to the JSONL
// conversation log, mirroring what the chat pipeline publishes.
func subscribeConversationEvents(bus *events.EventBus, sink domain.ConversationLogger, logger *zerolog.Logger) {
	record := func(name string) events.EventHandler {
		return func(event *events.Event) error {
			var payload events.ConversationEventPayload
			if err := json.Unmarshal(event.Payload, &payload); err != nil {
				logger.Error().Err(err).Str("event_type", event.Type).Msg("decode conversation event")
				return err
			}
			sink.Emit(name, payload.Text, payload.Attrs)
			return nil
		}
	}

	bus.Subscribe(events.EventConversationUser, record(models.EventUser))
	bus.Subscribe(events.EventConversationBot, record(models.EventBot))
}
