package service

import (
	"context"
	"time"

	"iwacu/internal/domain"
	"iwacu/internal/models"

	"github.com/rs/zerolog"
)

// StateService fronts the session/rate-limit repository for delivery
// channels.
type StateService struct {
	stateRepo domain.StateRepository
	logger    *zerolog.Logger
}

func NewStateService(stateRepo domain.StateRepository, logger *zerolog.Logger) *StateService {
	return &StateService{stateRepo: stateRepo, logger: logger}
}

func (s *StateService) GetSessionState(ctx context.Context, sender string) (*models.SessionState, error) {
	state, err := s.stateRepo.GetState(ctx, sender)
	if err != nil {
		s.logger.Error().Err(err).Str("sender", sender).Msg("failed to get session state")
		return nil, err
	}
	return state, nil
}

func (s *StateService) SetSessionState(ctx context.Context, sender, step string, data map[string]interface{}) error {
	state := &models.SessionState{
		Sender:   sender,
		Step:     step,
		Data:     data,
		LastSeen: time.Now(),
	}
	return s.stateRepo.SetState(ctx, state)
}

func (s *StateService) ClearSessionState(ctx context.Context, sender string) error {
	return s.stateRepo.ClearState(ctx, sender)
}

// CheckRateLimit reports whether the sender is still under the limit.
// Repository failures count as allowed so a broken store never blocks
// the chat.
func (s *StateService) CheckRateLimit(ctx context.Context, sender string, limit int, window time.Duration) bool {
	ok, err := s.stateRepo.CheckRateLimit(ctx, sender, limit, window)
	if err != nil {
		s.logger.Error().Err(err).Str("sender", sender).Msg("rate limit check failed")
		return true
	}
	return ok
}
