package models

// Detected languages.
const (
	LangFR = "fr"
	LangEN = "en"
)

// Intents, in classification priority order. IntentError is only ever
// produced by the chat pipeline when something unexpected breaks.
const (
	IntentMenu     = "menu"
	IntentPromos   = "promos"
	IntentHoraires = "horaires"
	IntentBooking  = "booking"
	IntentFallback = "fallback"
	IntentError    = "error"
)

// Conversation log event kinds.
const (
	EventUser = "user"
	EventBot  = "bot"
)

const (
	// DefaultSender is assumed when a chat message carries no sender.
	DefaultSender = "web"

	// DefaultArea is the seating area applied when a booking does not
	// specify one.
	DefaultArea = "int"

	// MenuTopN items are shown in a menu reply.
	MenuTopN = 3

	// BookingDurationMinutes is the reserved slot length used for the
	// calendar invite end time.
	BookingDurationMinutes = 90

	// BookingIDLength is the number of UUID characters kept for the
	// public booking identifier.
	BookingIDLength = 8

	// DateLayout and TimeLayout are the only accepted booking formats.
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	// ICSTimestampLayout is the DTSTART/DTEND format in invites.
	ICSTimestampLayout = "20060102T150405"
)

const (
	// RateLimitMessages per sender within RateLimitWindow seconds on
	// the Telegram channel.
	RateLimitMessages = 20
	RateLimitWindow   = 60

	// DefaultSessionTTL is the lifetime of channel session state.
	DefaultSessionTTL = 24 * 60 * 60
)
