package refdata

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"iwacu/internal/config"
	"iwacu/internal/models"

	"github.com/rs/zerolog"
)

// Reader loads the read-only reference tables from CSV files. Every
// call re-reads the file; there is no caching layer, so edits to the
// data files show up on the next request. A missing or malformed file
// yields an empty table, never an error.
type Reader struct {
	cfg    config.DataConfig
	logger *zerolog.Logger
}

func NewReader(cfg config.DataConfig, logger *zerolog.Logger) *Reader {
	return &Reader{cfg: cfg, logger: logger}
}

// Load reads a table by file name and returns its rows in stored
// order, keyed by header column.
func (r *Reader) Load(table string) []map[string]string {
	path := filepath.Join(r.cfg.Dir, table)

	f, err := os.Open(path)
	if err != nil {
		r.logger.Debug().Err(err).Str("table", table).Msg("reference table unavailable")
		return nil
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	// Ragged rows are tolerated; missing cells read as empty values.
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		r.logger.Debug().Err(err).Str("table", table).Msg("reference table malformed")
		return nil
	}
	if len(records) < 2 {
		return nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Menu returns the menu table in stored order.
func (r *Reader) Menu() []models.MenuItem {
	rows := r.Load(r.cfg.MenuFile)
	items := make([]models.MenuItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, models.MenuItem{
			Name:     row["name"],
			Price:    row["price"],
			Category: row["category"],
		})
	}
	return items
}

// Promos returns the promotions table in stored order.
func (r *Reader) Promos() []models.Promotion {
	rows := r.Load(r.cfg.PromoFile)
	promos := make([]models.Promotion, 0, len(rows))
	for _, row := range rows {
		promos = append(promos, models.Promotion{
			Name:  row["name"],
			Day:   row["day"],
			Start: row["start_time"],
			End:   row["end_time"],
			Notes: row["notes"],
		})
	}
	return promos
}

// Hours returns the weekly opening hours.
func (r *Reader) Hours() []models.HoursEntry {
	rows := r.Load(r.cfg.HoursFile)
	hours := make([]models.HoursEntry, 0, len(rows))
	for _, row := range rows {
		hours = append(hours, models.HoursEntry{
			Day:   row["day"],
			Open:  row["open"],
			Close: row["close"],
		})
	}
	return hours
}
