package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"iwacu/internal/config"
	"iwacu/internal/export"
	"iwacu/internal/models"
	"iwacu/internal/nlp"
	"iwacu/internal/refdata"
	"iwacu/internal/service"
	"iwacu/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

func newTestServer(t *testing.T, now time.Time) *HTTPServer {
	t.Helper()

	dataDir := t.TempDir()
	writeFile := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, name), []byte(content), 0o644))
	}
	writeFile("menu.csv", "name,price,category\nBrochettes,12.50,grill\nPoulet DG,15.00,main\nNdolé,13.00,main\nJus de bissap,4.00,drink\n")
	writeFile("promos.csv", "name,day,start_time,end_time,notes\nHappy Hour,friday,17:00,19:00,-50% sur les cocktails\nBrunch,sunday,09:00,11:00,Formule à 19€\n")
	writeFile("hours.csv", "day,open,close\nfriday,11:00,23:00\nsaturday,11:00,23:30\n")

	storeDir := t.TempDir()
	cfg := &config.Config{
		App: config.AppConfig{Name: "iwacu", Version: "1.0.0"},
		API: config.APIConfig{Port: 8080},
	}

	logger := zerolog.Nop()
	clock := fixedClock{now: now}

	reader := refdata.NewReader(config.DataConfig{
		Dir:       dataDir,
		MenuFile:  "menu.csv",
		PromoFile: "promos.csv",
		HoursFile: "hours.csv",
	}, &logger)

	info := service.NewInfoService(reader, clock)
	chat := service.NewChatService(nlp.NewClassifier(), info, nil, &logger)
	bookingLog := storage.NewBookingLog(filepath.Join(storeDir, "bookings.csv"), &logger)
	bookings := service.NewBookingService(
		bookingLog,
		storage.NewInviteStore(filepath.Join(storeDir, "ics_files"), &logger),
		clock,
		fixedIDGen{id: "a1b2c3d4-0000-0000-0000-000000000000"},
		nil,
		&logger,
	)
	exporter := export.NewExporter(bookingLog, filepath.Join(storeDir, "exports"), &logger)

	return NewHTTPServer(cfg, chat, bookings, info, exporter, clock, &logger)
}

func doRequest(t *testing.T, srv *HTTPServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:54321"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

// Friday 2025-06-06, 18:00: Happy Hour is active, Brunch is not.
var fridayEvening = time.Date(2025, 6, 6, 18, 0, 0, 0, time.UTC)

func TestRootEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "🍽️ Iwacu Chatbot API is running!", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Contains(t, body["endpoints"], "/chat")

	rec = doRequest(t, srv, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, fridayEvening.Format(time.RFC3339), body["timestamp"])
}

func TestMenuEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []models.MenuItem `json:"items"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Items, 4)
	assert.Equal(t, "Brochettes", body.Items[0].Name)
	assert.Equal(t, "12.50", body.Items[0].Price)
}

func TestPromosEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/promos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Active []models.Promotion `json:"active"`
		Today  []models.Promotion `json:"today"`
	}
	decodeBody(t, rec, &body)
	require.Len(t, body.Active, 1)
	assert.Equal(t, "Happy Hour", body.Active[0].Name)
	require.Len(t, body.Today, 1)
}

func TestHorairesEndpoints(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/horaires", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var week struct {
		Week []models.HoursEntry `json:"week"`
	}
	decodeBody(t, rec, &week)
	require.Len(t, week.Week, 2)

	rec = doRequest(t, srv, http.MethodGet, "/horaires/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var today map[string]string
	decodeBody(t, rec, &today)
	assert.Equal(t, "open", today["status"])
	assert.Equal(t, "11:00", today["open_time"])
	assert.Equal(t, "23:00", today["close_time"])
}

func TestTodayHoursUnknownDay(t *testing.T) {
	// A Monday, absent from the hours table.
	srv := newTestServer(t, time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC))

	rec := doRequest(t, srv, http.MethodGet, "/horaires/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "unknown", body["status"])
}

func TestChatEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodPost, "/chat", models.ChatMessage{
		Text: "Bonjour, avez-vous des promotions ?",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.ChatResult
	decodeBody(t, rec, &result)
	assert.Equal(t, models.IntentPromos, result.Intent)
	assert.Equal(t, models.LangFR, result.Lang)
	assert.Contains(t, result.Reply, "Happy Hour")
}

func TestChatEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("{not json"))
	req.RemoteAddr = "192.0.2.1:54321"
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBookingLifecycle(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodPost, "/booking", models.BookingRequest{
		Date:      "2025-06-10",
		Time:      "19:30",
		PartySize: 4,
		Name:      "Claire",
		Phone:     "+33601020304",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		OK        bool   `json:"ok"`
		BookingID string `json:"booking_id"`
		Storage   string `json:"storage"`
		ICSURL    string `json:"ics_url"`
	}
	decodeBody(t, rec, &body)
	assert.True(t, body.OK)
	assert.Equal(t, "A1B2C3D4", body.BookingID)
	assert.Equal(t, "csv", body.Storage)
	assert.Equal(t, "/booking/ics/A1B2C3D4", body.ICSURL)

	rec = doRequest(t, srv, http.MethodGet, body.ICSURL, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/calendar", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=reservation_A1B2C3D4.ics", rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "UID:A1B2C3D4@iwacu.restaurant")
}

func TestBookingRejectsPastDate(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodPost, "/booking", models.BookingRequest{
		Date:      "2025-06-06",
		Time:      "19:30",
		PartySize: 2,
		Name:      "Paul",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "Date must be in the future", body["error"])
}

func TestInviteMissReturns404(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/booking/ics/FFFFFFFF", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWidgetServed(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodGet, "/widget", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Iwacu Assistant")
}

func TestExportEndpoint(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodPost, "/booking", models.BookingRequest{
		Date:      "2025-06-10",
		Time:      "19:30",
		PartySize: 4,
		Name:      "Claire",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/export/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=bookings_2025-06-06.xlsx", rec.Header().Get("Content-Disposition"))
	assert.NotZero(t, rec.Body.Len())
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, fridayEvening)

	rec := doRequest(t, srv, http.MethodOptions, "/chat", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiting(t *testing.T) {
	srv := newTestServer(t, fridayEvening)
	srv.limiter = newRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})

	handler := srv.limiter.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "192.0.2.7:1000"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client gets its own bucket.
	other := httptest.NewRequest(http.MethodGet, "/health", nil)
	other.RemoteAddr = "192.0.2.8:1000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}
