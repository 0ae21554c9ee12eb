package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"iwacu/internal/api"
	"iwacu/internal/config"
	"iwacu/internal/domain"
	"iwacu/internal/events"
	"iwacu/internal/export"
	"iwacu/internal/logging"
	"iwacu/internal/metrics"
	"iwacu/internal/models"
	"iwacu/internal/nlp"
	"iwacu/internal/refdata"
	"iwacu/internal/service"
	"iwacu/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
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

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	clock := service.SystemClock{}
	idgen := service.UUIDGenerator{}

	eventBus := events.NewEventBus()
	conversationLog := storage.NewConversationLog(cfg.Storage.ConversationLog, clock, &logger)
	subscribeConversationEvents(eventBus, conversationLog, &logger)

	reader := refdata.NewReader(cfg.Data, &logger)
	info := service.NewInfoService(reader, clock)
	chatService := service.NewChatService(nlp.NewClassifier(), info, eventBus, &logger)

	bookingLog := storage.NewBookingLog(cfg.Storage.BookingsFile, &logger)
	inviteStore := storage.NewInviteStore(cfg.Storage.InvitesDir, &logger)
	bookingService := service.NewBookingService(bookingLog, inviteStore, clock, idgen, eventBus, &logger)
	exporter := export.NewExporter(bookingLog, cfg.Exports.Path, &logger)

	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg, chatService, bookingService, info, exporter, clock, &logger)
	return startServer(ctx, httpServer, &logger)
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
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	dirs := []string{
		filepath.Dir(cfg.Storage.BookingsFile),
		cfg.Storage.InvitesDir,
		filepath.Dir(cfg.Storage.ConversationLog),
		cfg.Exports.Path,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error().Err(err).Str("dir", dir).Msg("create directory")
			return err
		}
	}
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

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

func startServer(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("API server stopped")
	return nil
}
