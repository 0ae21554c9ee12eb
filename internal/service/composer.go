package service

import (
	"fmt"
	"strings"

	"iwacu/internal/models"
)

// ReplyContext carries the intent-specific data a reply needs. Only
// the fields relevant to the intent are consulted.
type ReplyContext struct {
	MenuItems    []models.MenuItem
	ActivePromos []models.Promotion
	TodayHours   *models.HoursEntry
}

// Compose renders the localized reply for an intent. It never fails:
// unknown intents fall back, missing data renders as empty segments.
func Compose(intent, lang string, rctx ReplyContext) string {
	byLang, ok := replyTemplates[intent]
	if !ok {
		byLang = replyTemplates[models.IntentFallback]
	}
	tmpl, ok := byLang[lang]
	if !ok {
		tmpl = byLang[models.LangFR]
	}

	switch intent {
	case models.IntentMenu:
		return strings.ReplaceAll(tmpl, "{items}", menuLines(rctx.MenuItems))
	case models.IntentPromos:
		return strings.ReplaceAll(tmpl, "{promos}", promoLines(rctx.ActivePromos, lang))
	case models.IntentHoraires:
		status := statusOpenFR
		if lang == models.LangEN {
			status = statusOpenEN
		}
		out := strings.ReplaceAll(tmpl, "{status}", status)
		return strings.ReplaceAll(out, "{hours}", hoursLine(rctx.TodayHours))
	default:
		return tmpl
	}
}

// menuLines renders the first MenuTopN items in stored order.
func menuLines(items []models.MenuItem) string {
	if len(items) > models.MenuTopN {
		items = items[:models.MenuTopN]
	}
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("• %s - €%s", it.Name, it.Price))
	}
	return strings.Join(lines, "\n")
}

func promoLines(active []models.Promotion, lang string) string {
	if len(active) == 0 {
		if lang == models.LangEN {
			return noActivePromosEN
		}
		return noActivePromosFR
	}
	lines := make([]string, 0, len(active))
	for _, p := range active {
		lines = append(lines, fmt.Sprintf("• %s: %s", p.Name, p.Notes))
	}
	return strings.Join(lines, "\n")
}

// hoursLine is empty when no entry exists for today; the template
// still renders around it.
func hoursLine(entry *models.HoursEntry) string {
	if entry == nil || entry.Open == "" {
		return ""
	}
	return fmt.Sprintf("\n⏰ %s - %s", entry.Open, entry.Close)
}
