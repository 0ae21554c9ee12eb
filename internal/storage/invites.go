package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"
)

// Booking identifiers are 8 upper-case hex characters; anything else
// is refused before touching the filesystem.
var bookingIDPattern = regexp.MustCompile(`^[0-9A-F]{8}$`)

// InviteStore keeps one immutable .ics document per booking ID.
type InviteStore struct {
	dir    string
	logger *zerolog.Logger
}

func NewInviteStore(dir string, logger *zerolog.Logger) *InviteStore {
	return &InviteStore{dir: dir, logger: logger}
}

// Put writes the invite document. The document must exist before the
// booking submission returns, so this is a plain synchronous write.
func (s *InviteStore) Put(ctx context.Context, bookingID string, document []byte) error {
	if !bookingIDPattern.MatchString(bookingID) {
		return fmt.Errorf("invalid booking id %q", bookingID)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create invites directory: %w", err)
	}

	path := filepath.Join(s.dir, bookingID+".ics")
	if err := os.WriteFile(path, document, 0o644); err != nil {
		return fmt.Errorf("write invite: %w", err)
	}

	s.logger.Info().Str("booking_id", bookingID).Msg("invite written")
	return nil
}

// Get returns the stored document, or ErrNotFound.
func (s *InviteStore) Get(ctx context.Context, bookingID string) ([]byte, error) {
	if !bookingIDPattern.MatchString(bookingID) {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(s.dir, bookingID+".ics"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read invite: %w", err)
	}
	return data, nil
}
