package service

import (
	"strings"

	"iwacu/internal/domain"
	"iwacu/internal/models"
)

// InfoService answers read-only questions about the reference data.
// Every call re-reads the tables through the reader; nothing is
// cached.
type InfoService struct {
	reader domain.TableReader
	clock  domain.Clock
}

func NewInfoService(reader domain.TableReader, clock domain.Clock) *InfoService {
	return &InfoService{reader: reader, clock: clock}
}

// Menu returns the full menu table in stored order.
func (s *InfoService) Menu() []models.MenuItem {
	return s.reader.Menu()
}

// Promos evaluates the promotions table against the current time.
func (s *InfoService) Promos() (active, today []models.Promotion) {
	return EvaluatePromos(s.reader.Promos(), s.clock.Now())
}

// Hours returns the weekly schedule.
func (s *InfoService) Hours() []models.HoursEntry {
	return s.reader.Hours()
}

// TodayHours returns today's entry, or nil when the table has none
// for the current weekday.
func (s *InfoService) TodayHours() *models.HoursEntry {
	weekday := strings.ToLower(s.clock.Now().Weekday().String())
	for _, h := range s.reader.Hours() {
		if h.Day == weekday {
			entry := h
			return &entry
		}
	}
	return nil
}
