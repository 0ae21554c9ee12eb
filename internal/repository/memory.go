package repository

import (
	"context"
	"sync"
	"time"

	"iwacu/internal/models"
)

// MemoryStateRepository keeps session state and rate-limit counters in
// process memory. It backs the Telegram channel when Redis is down or
// not configured.
type MemoryStateRepository struct {
	states     sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

func NewMemoryStateRepository(ttl time.Duration) *MemoryStateRepository {
	return &MemoryStateRepository{ttl: ttl}
}

func (r *MemoryStateRepository) GetState(ctx context.Context, sender string) (*models.SessionState, error) {
	val, ok := r.states.Load(sender)
	if !ok {
		return nil, nil
	}
	return val.(*models.SessionState), nil
}

func (r *MemoryStateRepository) SetState(ctx context.Context, state *models.SessionState) error {
	r.states.Store(state.Sender, state)
	return nil
}

func (r *MemoryStateRepository) ClearState(ctx context.Context, sender string) error {
	r.states.Delete(sender)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryStateRepository) CheckRateLimit(ctx context.Context, sender string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(sender)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(sender, entry)
	return entry.count <= limit, nil
}
