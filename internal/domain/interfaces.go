package domain

import (
	"context"
	"time"

	"iwacu/internal/models"
)

// Clock supplies the current time. Injected so services stay
// deterministic under test.
type Clock interface {
	Now() time.Time
}

// IDGenerator supplies a universally-unique token. The booking service
// derives public booking identifiers from it.
type IDGenerator interface {
	NewID() string
}

// TableReader loads a reference-data table as ordered rows of
// column-name to value. A missing or malformed source yields an empty
// slice, never an error.
type TableReader interface {
	Load(table string) []map[string]string
	Menu() []models.MenuItem
	Promos() []models.Promotion
	Hours() []models.HoursEntry
}

// ConversationLogger is the append-only event sink for chat traffic.
// Emit is fire-and-forget; failures never propagate to the chat path.
type ConversationLogger interface {
	Emit(event, text string, attrs map[string]string)
}

// BookingStore persists accepted reservations. Append must be atomic
// with respect to concurrent writers.
type BookingStore interface {
	Append(ctx context.Context, rec *models.BookingRecord) error
	All(ctx context.Context) ([]models.BookingRecord, error)
}

// InviteStore keeps one calendar-invite document per booking ID.
type InviteStore interface {
	Put(ctx context.Context, bookingID string, document []byte) error
	Get(ctx context.Context, bookingID string) ([]byte, error)
}

// StateRepository keeps per-sender session state and rate-limit
// counters for delivery channels.
type StateRepository interface {
	GetState(ctx context.Context, sender string) (*models.SessionState, error)
	SetState(ctx context.Context, state *models.SessionState) error
	ClearState(ctx context.Context, sender string) error
	CheckRateLimit(ctx context.Context, sender string, limit int, window time.Duration) (bool, error)
}

// EventPublisher fans conversation events out to in-process
// subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ChatService is the message pipeline a transport calls into. It never
// returns an error; faults degrade to the apology reply.
type ChatService interface {
	Chat(ctx context.Context, msg models.ChatMessage) models.ChatResult
}

// BookingService is the reservation lifecycle entry point.
type BookingService interface {
	Submit(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error)
	Invite(ctx context.Context, bookingID string) ([]byte, error)
}
