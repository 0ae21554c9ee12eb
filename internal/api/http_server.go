package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"iwacu/internal/config"
	"iwacu/internal/domain"
	"iwacu/internal/export"
	"iwacu/internal/metrics"
	"iwacu/internal/models"
	"iwacu/internal/service"
	"iwacu/internal/storage"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HTTPServer is the web surface of the chatbot: the chat endpoint, the
// read-only data endpoints, the booking lifecycle and the embedded
// test widget.
type HTTPServer struct {
	cfg      *config.Config
	chat     domain.ChatService
	bookings domain.BookingService
	info     *service.InfoService
	exporter *export.Exporter
	clock    domain.Clock
	logger   *zerolog.Logger
	server   *http.Server
	limiter  *rateLimiter
}

func NewHTTPServer(cfg *config.Config, chat domain.ChatService, bookings domain.BookingService, info *service.InfoService, exporter *export.Exporter, clock domain.Clock, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:      cfg,
		chat:     chat,
		bookings: bookings,
		info:     info,
		exporter: exporter,
		clock:    clock,
		logger:   logger,
		limiter:  newRateLimiter(cfg.API.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleRoot)
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/menu", srv.handleMenu)
	mux.HandleFunc("/promos", srv.handlePromos)
	mux.HandleFunc("/horaires", srv.handleHoraires)
	mux.HandleFunc("/horaires/today", srv.handleTodayHours)
	mux.HandleFunc("/chat", srv.handleChat)
	mux.HandleFunc("/booking", srv.handleBooking)
	mux.HandleFunc("/booking/ics/", srv.handleInvite)
	mux.HandleFunc("/widget", srv.handleWidget)
	mux.HandleFunc("/export/bookings", srv.handleExport)
	mux.Handle("/metrics", promhttp.Handler())

	handler := srv.loggingMiddleware(corsMiddleware(srv.limiter.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

// Handler exposes the fully wrapped handler chain, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "🍽️ Iwacu Chatbot API is running!",
		"version":     s.cfg.App.Version,
		"test_widget": fmt.Sprintf("http://localhost:%d/widget", s.cfg.API.Port),
		"endpoints":   []string{"/health", "/menu", "/promos", "/horaires", "/chat", "/booking"},
	})
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.clock.Now().Format(time.RFC3339),
	})
}

func (s *HTTPServer) handleMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	items := s.info.Menu()
	if items == nil {
		items = []models.MenuItem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *HTTPServer) handlePromos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	active, today := s.info.Promos()
	if active == nil {
		active = []models.Promotion{}
	}
	if today == nil {
		today = []models.Promotion{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"active": active, "today": today})
}

func (s *HTTPServer) handleHoraires(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	week := s.info.Hours()
	if week == nil {
		week = []models.HoursEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"week": week})
}

func (s *HTTPServer) handleTodayHours(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	entry := s.info.TodayHours()
	if entry == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "unknown"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "open",
		"open_time":  entry.Open,
		"close_time": entry.Close,
	})
}

func (s *HTTPServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var msg models.ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result := s.chat.Chat(r.Context(), msg)
	writeJSON(w, http.StatusOK, result)
}

func (s *HTTPServer) handleBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := s.bookings.Submit(r.Context(), req)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidDate) {
			writeError(w, http.StatusBadRequest, "Date must be in the future")
			return
		}
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Booking failed: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"booking_id": rec.BookingID,
		"storage":    "csv",
		"ics_url":    "/booking/ics/" + rec.BookingID,
	})
}

func (s *HTTPServer) handleInvite(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	const prefix = "/booking/ics/"
	bookingID := strings.TrimPrefix(r.URL.Path, prefix)
	if bookingID == "" || strings.Contains(bookingID, "/") {
		writeError(w, http.StatusBadRequest, "booking_id is required")
		return
	}

	document, err := s.bookings.Invite(r.Context(), bookingID)
	if err != nil {
		writeError(w, http.StatusNotFound, "ICS file not found")
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=reservation_%s.ics", bookingID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(document)
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path, err := s.exporter.Bookings(r.Context(), s.clock.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("export bookings")
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filepath.Base(path)))
	http.ServeFile(w, r, path)
}

func (s *HTTPServer) handleWidget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(widgetHTML))
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

// corsMiddleware allows any origin so the widget can be embedded on
// the restaurant's site.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
