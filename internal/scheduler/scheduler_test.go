package scheduler_test

import (
	"context"
	"errors"
	"testing"

	"go-hiring-sync/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockService) ReconcileApplicantCounts(ctx context.Context, actorID string) (int, error) {
	args := m.Called(ctx, actorID)
	return args.Int(0), args.Error(1)
}

type MockReplayer struct {
	mock.Mock
}

func (m *MockReplayer) Replay(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestSweep(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reload, reconcile and replay", func(t *testing.T) {
		svc := new(MockService)
		replay := new(MockReplayer)
		svc.On("Refresh", mock.Anything).Return(nil)
		svc.On("ReconcileApplicantCounts", mock.Anything, scheduler.SystemActor).Return(2, nil)
		replay.On("Replay", mock.Anything).Return(3, nil)

		res := scheduler.New("", svc, replay, nil).Sweep(ctx)

		assert.Equal(t, scheduler.SweepResult{CountersFixed: 2, AuditsReplayed: 3}, res)
		svc.AssertExpectations(t)
		replay.AssertExpectations(t)
	})

	t.Run("Should skip reconciliation when the reload fails", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		svc := new(MockService)
		replay := new(MockReplayer)
		svc.On("Refresh", mock.Anything).Return(errors.New("store offline"))
		replay.On("Replay", mock.Anything).Return(0, nil)

		res := scheduler.New("", svc, replay, zap.New(core)).Sweep(ctx)

		assert.Zero(t, res.CountersFixed)
		svc.AssertNotCalled(t, "ReconcileApplicantCounts", mock.Anything, mock.Anything)
		replay.AssertExpectations(t)
		assert.Equal(t, 1, logs.FilterMessage("reload failed, skipping reconciliation").Len())
	})

	t.Run("Should keep partial results when steps fail", func(t *testing.T) {
		svc := new(MockService)
		replay := new(MockReplayer)
		svc.On("Refresh", mock.Anything).Return(nil)
		svc.On("ReconcileApplicantCounts", mock.Anything, scheduler.SystemActor).Return(1, errors.New("one job failed"))
		replay.On("Replay", mock.Anything).Return(4, errors.New("audit table down"))

		res := scheduler.New("", svc, replay, nil).Sweep(ctx)

		assert.Equal(t, scheduler.SweepResult{CountersFixed: 1, AuditsReplayed: 4}, res)
	})

	t.Run("Should run without a replayer", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Refresh", mock.Anything).Return(nil)
		svc.On("ReconcileApplicantCounts", mock.Anything, scheduler.SystemActor).Return(0, nil)

		res := scheduler.New("", svc, nil, nil).Sweep(ctx)
		assert.Zero(t, res.AuditsReplayed)
	})
}

func TestStart(t *testing.T) {
	t.Run("Should reject an invalid schedule", func(t *testing.T) {
		s := scheduler.New("every now and then", new(MockService), nil, nil)
		assert.Error(t, s.Start(context.Background()))
	})

	t.Run("Should start and stop cleanly", func(t *testing.T) {
		s := scheduler.New("@every 1h", new(MockService), nil, nil)
		assert.NoError(t, s.Start(context.Background()))
		s.Stop()
	})
}
