package service

import (
	"sync"
	"time"

	"iwacu/internal/models"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

type fakeIDGen struct{ id string }

func (g fakeIDGen) NewID() string { return g.id }

// fakeReader serves fixed tables through the TableReader contract.
type fakeReader struct {
	menu   []models.MenuItem
	promos []models.Promotion
	hours  []models.HoursEntry
}

func (r *fakeReader) Load(table string) []map[string]string { return nil }
func (r *fakeReader) Menu() []models.MenuItem               { return r.menu }
func (r *fakeReader) Promos() []models.Promotion            { return r.promos }
func (r *fakeReader) Hours() []models.HoursEntry            { return r.hours }

// captureBus records published events.
type captureBus struct {
	mu     sync.Mutex
	events []capturedEvent
}

type capturedEvent struct {
	Type    string
	Payload interface{}
}

func (b *captureBus) PublishJSON(eventType string, payload interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, capturedEvent{Type: eventType, Payload: payload})
	return nil
}

func (b *captureBus) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}
