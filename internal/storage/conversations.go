package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"iwacu/internal/domain"

	"github.com/rs/zerolog"
)

// ConversationLog appends chat events to a JSONL file. Emit never
// fails the caller; write errors are logged and dropped.
type ConversationLog struct {
	path   string
	clock  domain.Clock
	mu     sync.Mutex
	logger *zerolog.Logger
}

func NewConversationLog(path string, clock domain.Clock, logger *zerolog.Logger) *ConversationLog {
	return &ConversationLog{path: path, clock: clock, logger: logger}
}

type conversationEntry struct {
	Timestamp string            `json:"timestamp"`
	Event     string            `json:"event"`
	Text      string            `json:"text"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// Emit appends one event line.
func (l *ConversationLog) Emit(event, text string, attrs map[string]string) {
	entry := conversationEntry{
		Timestamp: l.clock.Now().Format(time.RFC3339Nano),
		Event:     event,
		Text:      text,
		Attrs:     attrs,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		l.logger.Error().Err(err).Msg("marshal conversation entry")
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		l.logger.Error().Err(err).Msg("create conversation log directory")
		return
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		l.logger.Error().Err(err).Msg("open conversation log")
		return
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		l.logger.Error().Err(err).Msg("append conversation entry")
	}
}
