package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"iwacu/internal/domain"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Réservations"

var headers = []string{
	"Booking ID", "Date", "Heure", "Personnes",
	"Nom", "Téléphone", "Zone", "Notes", "Créée le",
}

// Exporter turns the booking log into an Excel workbook for the
// restaurant staff.
type Exporter struct {
	store  domain.BookingStore
	dir    string
	logger *zerolog.Logger
}

func NewExporter(store domain.BookingStore, dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{store: store, dir: dir, logger: logger}
}

// Bookings writes every booking on record to a dated workbook and
// returns the file path.
func (e *Exporter) Bookings(ctx context.Context, now time.Time) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	records, err := e.store.All(ctx)
	if err != nil {
		return "", fmt.Errorf("error reading bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", lastHeader, style)

	for i, rec := range records {
		row := i + 2
		values := []string{
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
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "I", 18)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s.xlsx", now.Format("2006-01-02"))
	filePath := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(records)).Msg("Excel file created")
	return filePath, nil
}
