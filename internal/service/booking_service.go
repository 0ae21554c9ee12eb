package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iwacu/internal/domain"
	"iwacu/internal/events"
	"iwacu/internal/ics"
	"iwacu/internal/metrics"
	"iwacu/internal/models"
	"iwacu/internal/storage"

	"github.com/rs/zerolog"
)

// BookingService runs the reservation lifecycle: validate, assign an
// identifier, append to the booking log, generate the calendar invite.
// Validation failures short-circuit before any write; a failed write
// surfaces as ErrBookingFailed.
type BookingService struct {
	log      domain.BookingStore
	invites  domain.InviteStore
	clock    domain.Clock
	idgen    domain.IDGenerator
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(log domain.BookingStore, invites domain.InviteStore, clock domain.Clock, idgen domain.IDGenerator, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		log:      log,
		invites:  invites,
		clock:    clock,
		idgen:    idgen,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Submit accepts or rejects one reservation request.
func (s *BookingService) Submit(ctx context.Context, req models.BookingRequest) (*models.BookingRecord, error) {
	now := s.clock.Now()

	start, err := s.validate(req, now)
	if err != nil {
		metrics.IncBookingRejected("invalid_date")
		s.publishBooking(events.EventBookingRejected, "", req, err.Error())
		return nil, err
	}

	if req.Area == "" {
		req.Area = models.DefaultArea
	}

	// First 8 characters of a UUID, upper-cased. No uniqueness check
	// against prior records; collisions are treated as negligible.
	bookingID := strings.ToUpper(s.idgen.NewID())
	if len(bookingID) > models.BookingIDLength {
		bookingID = bookingID[:models.BookingIDLength]
	}

	rec := &models.BookingRecord{
		BookingID: bookingID,
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
		Name:      req.Name,
		Phone:     req.Phone,
		Area:      req.Area,
		Notes:     req.Notes,
		CreatedAt: now,
	}

	if err := s.log.Append(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("append booking")
		metrics.IncBookingRejected("booking_failed")
		return nil, fmt.Errorf("%w: %v", storage.ErrBookingFailed, err)
	}

	invite := ics.NewInvite(rec, start)
	if err := s.invites.Put(ctx, bookingID, invite.Render()); err != nil {
		s.logger.Error().Err(err).Str("booking_id", bookingID).Msg("write invite")
		metrics.IncBookingRejected("booking_failed")
		return nil, fmt.Errorf("%w: %v", storage.ErrBookingFailed, err)
	}

	metrics.IncBookingCreated()
	s.publishBooking(events.EventBookingCreated, bookingID, req, "")
	s.logger.Info().Str("booking_id", bookingID).Int("party_size", req.PartySize).Msg("booking accepted")

	return rec, nil
}

// Invite fetches the calendar document for a booking.
func (s *BookingService) Invite(ctx context.Context, bookingID string) ([]byte, error) {
	return s.invites.Get(ctx, bookingID)
}

// validate checks date and time formats and requires the date to be
// strictly after today. It returns the parsed reservation start.
func (s *BookingService) validate(req models.BookingRequest, now time.Time) (time.Time, error) {
	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return time.Time{}, storage.ErrInvalidDate
	}

	clockTime, err := time.Parse(models.TimeLayout, req.Time)
	if err != nil {
		return time.Time{}, storage.ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !date.After(today) {
		return time.Time{}, storage.ErrInvalidDate
	}

	start := time.Date(date.Year(), date.Month(), date.Day(),
		clockTime.Hour(), clockTime.Minute(), 0, 0, time.UTC)
	return start, nil
}

func (s *BookingService) publishBooking(eventType, bookingID string, req models.BookingRequest, reason string) {
	if s.eventBus == nil {
		return
	}
	payload := events.BookingEventPayload{
		BookingID: bookingID,
		Date:      req.Date,
		Time:      req.Time,
		PartySize: req.PartySize,
		Name:      req.Name,
		Reason:    reason,
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("publish booking event")
	}
}
