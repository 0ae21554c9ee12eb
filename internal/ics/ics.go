package ics

import (
	"fmt"
	"strings"
	"time"

	"iwacu/internal/models"
)

const (
	prodID   = "-//Iwacu//Reservation//EN"
	uidHost  = "iwacu.restaurant"
	location = "Restaurant Iwacu"
)

// Invite describes one reservation event to be rendered as an
// iCalendar document.
type Invite struct {
	BookingID string
	Start     time.Time
	End       time.Time
	Name      string
	PartySize int
}

// NewInvite builds an invite for a booking; the event runs for the
// standard reservation slot after start.
func NewInvite(rec *models.BookingRecord, start time.Time) Invite {
	return Invite{
		BookingID: rec.BookingID,
		Start:     start,
		End:       start.Add(models.BookingDurationMinutes * time.Minute),
		Name:      rec.Name,
		PartySize: rec.PartySize,
	}
}

// Render produces the calendar document. Output is deterministic for a
// given invite, so repeated retrievals stay byte-identical.
func (i Invite) Render() []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:" + prodID + "\r\n")
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:%s@%s\r\n", i.BookingID, uidHost)
	fmt.Fprintf(&b, "DTSTART:%s\r\n", i.Start.Format(models.ICSTimestampLayout))
	fmt.Fprintf(&b, "DTEND:%s\r\n", i.End.Format(models.ICSTimestampLayout))
	fmt.Fprintf(&b, "SUMMARY:Réservation Iwacu - %s\r\n", i.Name)
	fmt.Fprintf(&b, "DESCRIPTION:Table pour %d personne(s)\r\n", i.PartySize)
	b.WriteString("LOCATION:" + location + "\r\n")
	b.WriteString("END:VEVENT\r\n")
	b.WriteString("END:VCALENDAR\r\n")
	return []byte(b.String())
}
