package service

import (
	"strings"
	"time"

	"iwacu/internal/models"
)

// EvaluatePromos splits the promotions table into the promotions
// scheduled for today's weekday and the subset whose time window
// contains now. Windows are inclusive on both ends and never wrap
// overnight. A promotion with an unparsable start or end stays in
// today but is excluded from active.
func EvaluatePromos(promos []models.Promotion, now time.Time) (active, today []models.Promotion) {
	weekday := strings.ToLower(now.Weekday().String())
	minuteOfDay := now.Hour()*60 + now.Minute()

	for _, p := range promos {
		if p.Day != weekday && p.Day != "all" {
			continue
		}
		today = append(today, p)

		start, okStart := parseMinutes(p.Start)
		end, okEnd := parseMinutes(p.End)
		if !okStart || !okEnd {
			continue
		}
		if start <= minuteOfDay && minuteOfDay <= end {
			active = append(active, p)
		}
	}
	return active, today
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(s string) (int, bool) {
	t, err := time.Parse(models.TimeLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
