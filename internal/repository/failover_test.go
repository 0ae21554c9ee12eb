package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"iwacu/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetState(ctx context.Context, sender string) (*models.SessionState, error) {
	args := m.Called(ctx, sender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionState), args.Error(1)
}

func (m *mockRepo) SetState(ctx context.Context, state *models.SessionState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *mockRepo) ClearState(ctx context.Context, sender string) error {
	args := m.Called(ctx, sender)
	return args.Error(0)
}

func (m *mockRepo) CheckRateLimit(ctx context.Context, sender string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, sender, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverStateRepository(t *testing.T) {
	primary := new(mockRepo)
	fallback := new(mockRepo)
	logger := zerolog.New(io.Discard)
	repo := NewFailoverStateRepository(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		state := &models.SessionState{Sender: "a"}
		primary.On("GetState", ctx, "a").Return(state, nil).Once()

		got, err := repo.GetState(ctx, "a")
		assert.NoError(t, err)
		assert.Equal(t, state, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		state := &models.SessionState{Sender: "b"}
		primary.On("GetState", ctx, "b").Return(nil, errors.New("fail")).Once()
		fallback.On("GetState", ctx, "b").Return(state, nil).Once()

		got, err := repo.GetState(ctx, "b")
		assert.NoError(t, err)
		assert.Equal(t, state, got)
		assert.True(t, repo.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("StaysOnFallbackWhileDown", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck = time.Now()

		fallback.On("CheckRateLimit", ctx, "c", 5, time.Minute).Return(true, nil).Once()

		allowed, err := repo.CheckRateLimit(ctx, "c", 5, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		repo.isDown.Store(true)
		repo.lastCheck = time.Now().Add(-2 * time.Minute)

		state := &models.SessionState{Sender: "d"}
		primary.On("GetState", ctx, "d").Return(state, nil).Once()

		got, err := repo.GetState(ctx, "d")
		assert.NoError(t, err)
		assert.Equal(t, state, got)
		assert.False(t, repo.isDown.Load())
		primary.AssertExpectations(t)
	})
}
