package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"iwacu/internal/models"

	"github.com/rs/zerolog"
)

// bookingColumns is the fixed column order of the reservation log.
var bookingColumns = []string{
	"booking_id", "date", "time", "party_size",
	"name", "phone", "area", "notes", "created_at",
}

// BookingLog is the append-only reservation store. Records are written
// once and never mutated. A store-level mutex covers the whole
// size-check/header/row sequence so concurrent submissions cannot
// interleave partial lines.
type BookingLog struct {
	path   string
	mu     sync.Mutex
	logger *zerolog.Logger
}

func NewBookingLog(path string, logger *zerolog.Logger) *BookingLog {
	return &BookingLog{path: path, logger: logger}
}

// Append writes one record, emitting the header first when the log is
// empty or newly created.
func (l *BookingLog) Append(ctx context.Context, rec *models.BookingRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create bookings directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open booking log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat booking log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(bookingColumns); err != nil {
			return fmt.Errorf("write booking header: %w", err)
		}
	}

	row := []string{
		rec.BookingID,
		rec.Date,
		rec.Time,
		strconv.Itoa(rec.PartySize),
		rec.Name,
		rec.Phone,
		rec.Area,
		rec.Notes,
		rec.CreatedAt.Format(time.RFC3339),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write booking row: %w", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush booking log: %w", err)
	}

	l.logger.Info().Str("booking_id", rec.BookingID).Str("date", rec.Date).Msg("booking persisted")
	return nil
}

// All reads the full log back in stored order. A missing log means no
// bookings yet, not an error.
func (l *BookingLog) All(ctx context.Context) ([]models.BookingRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open booking log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read booking log: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	records := make([]models.BookingRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(bookingColumns) {
			continue
		}
		size, _ := strconv.Atoi(row[3])
		createdAt, _ := time.Parse(time.RFC3339, row[8])
		records = append(records, models.BookingRecord{
			BookingID: row[0],
			Date:      row[1],
			Time:      row[2],
			PartySize: size,
			Name:      row[4],
			Phone:     row[5],
			Area:      row[6],
			Notes:     row[7],
			CreatedAt: createdAt,
		})
	}
	return records, nil
}
