package models

import "time"

// MenuItem is a single row of the menu reference table. The table is
// read-only; the core never writes menu data.
type MenuItem struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Category string `json:"category,omitempty"`
}

// Promotion is a row of the promotions reference table. Day is a
// lower-case English weekday name or "all". Start and End are "HH:MM"
// strings; malformed values keep the promotion out of the active set
// but never fail evaluation.
type Promotion struct {
	Name  string `json:"name"`
	Day   string `json:"day"`
	Start string `json:"start_time"`
	End   string `json:"end_time"`
	Notes string `json:"notes"`
}

// HoursEntry is a row of the weekly opening-hours table, at most one
// per weekday.
type HoursEntry struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ChatMessage is one incoming chat request.
type ChatMessage struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// ChatResult is what the chat pipeline hands back to the transport.
type ChatResult struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
	Lang   string `json:"lang"`
}

// BookingRequest is a reservation submission before validation.
type BookingRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Area      string `json:"area"`
	Notes     string `json:"notes"`
}

// BookingRecord is the immutable accepted reservation as persisted in
// the booking log. Records are appended once and never mutated or
// deleted.
type BookingRecord struct {
	BookingID string    `json:"booking_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	PartySize int       `json:"party_size"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Area      string    `json:"area"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionState keeps per-sender conversation state for channels that
// need it (currently the Telegram channel).
type SessionState struct {
	Sender   string                 `json:"sender"`
	Step     string                 `json:"step"`
	Data     map[string]interface{} `json:"data,omitempty"`
	LastSeen time.Time              `json:"last_seen"`
}
