package storage

import "errors"

var (
	// ErrInvalidDate rejects a booking whose date or time does not
	// parse, or whose date is not strictly in the future.
	ErrInvalidDate = errors.New("invalid or non-future booking date")

	// ErrNotFound signals a missing calendar invite.
	ErrNotFound = errors.New("not found")

	// ErrBookingFailed wraps unexpected I/O failures while persisting
	// a booking.
	ErrBookingFailed = errors.New("booking failed")
)
