package service

import (
	"testing"
	"time"

	"iwacu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfoServiceTodayHours(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	clock := fakeClock{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	reader := &fakeReader{hours: []models.HoursEntry{
		{Day: "monday", Open: "11:00", Close: "21:00"},
		{Day: "tuesday", Open: "11:30", Close: "22:00"},
	}}
	info := NewInfoService(reader, clock)

	entry := info.TodayHours()
	require.NotNil(t, entry)
	assert.Equal(t, "tuesday", entry.Day)
	assert.Equal(t, "11:30", entry.Open)
}

func TestInfoServiceTodayHoursMissing(t *testing.T) {
	clock := fakeClock{t: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	reader := &fakeReader{hours: []models.HoursEntry{
		{Day: "sunday", Open: "12:00", Close: "20:00"},
	}}
	info := NewInfoService(reader, clock)

	assert.Nil(t, info.TodayHours())
}

func TestInfoServicePromos(t *testing.T) {
	clock := fakeClock{t: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	reader := &fakeReader{promos: []models.Promotion{
		{Name: "Brunch", Day: "all", Start: "09:00", End: "11:00"},
	}}
	info := NewInfoService(reader, clock)

	active, today := info.Promos()
	assert.Len(t, active, 1)
	assert.Len(t, today, 1)
}
