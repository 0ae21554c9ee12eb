package nlp

import (
	"strings"

	"iwacu/internal/models"
)

// Classifier maps free text to a language tag and an intent using
// fixed lexical heuristics. It holds no state and performs no I/O.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Accented characters are a strong French signal and short-circuit
// language detection.
var frenchAccents = []rune{'à', 'é', 'è', 'ê', 'ç', 'ù'}

var (
	frenchMarkers  = []string{"le", "la", "des", "vous", "avec", "pour", "avez", "êtes"}
	englishMarkers = []string{"the", "you", "are", "have", "with", "what", "your"}
)

// intentPattern pairs an intent with its keyword set. Order matters:
// the first intent with any keyword hit wins.
type intentPattern struct {
	intent   string
	keywords []string
}

var intentPatterns = []intentPattern{
	{models.IntentMenu, []string{"menu", "carte", "plat", "manger", "food", "dish", "eat"}},
	{models.IntentPromos, []string{"promo", "offre", "réduction", "discount", "deal", "happy hour"}},
	{models.IntentHoraires, []string{"heure", "horaire", "ouvert", "fermé", "open", "close", "time", "hour"}},
	{models.IntentBooking, []string{"réserv", "table", "book", "reservation", "place"}},
}

// Classify runs language and intent detection on one message.
func (c *Classifier) Classify(text string) (lang, intent string) {
	return c.DetectLanguage(text), c.ClassifyIntent(text)
}

// DetectLanguage returns "fr" or "en". Accents win immediately;
// otherwise marker-word substring counts decide, ties favoring French.
func (c *Classifier) DetectLanguage(text string) string {
	lower := strings.ToLower(text)

	for _, accent := range frenchAccents {
		if strings.ContainsRune(lower, accent) {
			return models.LangFR
		}
	}

	frCount := countMarkers(lower, frenchMarkers)
	enCount := countMarkers(lower, englishMarkers)

	if frCount >= enCount {
		return models.LangFR
	}
	return models.LangEN
}

// ClassifyIntent returns the first intent whose keyword set has a
// substring match, or fallback. Matching is deliberately substring
// based, so "réservation" hits the "réserv" keyword.
func (c *Classifier) ClassifyIntent(text string) string {
	lower := strings.ToLower(text)

	for _, p := range intentPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(lower, kw) {
				return p.intent
			}
		}
	}
	return models.IntentFallback
}

func countMarkers(lower string, markers []string) int {
	count := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			count++
		}
	}
	return count
}
