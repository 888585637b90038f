package jobs

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Handle(ctx context.Context, cmd commands.ReconcileOrdersCommand) ([]commands.Anomaly, error) {
	args := m.Called(ctx, cmd)
	anomalies, _ := args.Get(0).([]commands.Anomaly)
	return anomalies, args.Error(1)
}

var discardLogger = slog.New(slog.DiscardHandler)

func TestReconciliationJob_StartRejectsInvalidSettings(t *testing.T) {
	job := NewReconciliationJob(new(MockReconciler), "* * * * * *", 0, 10, discardLogger)

	require.Error(t, job.Start())
}

func TestReconciliationJob_StartRejectsBadSchedule(t *testing.T) {
	job := NewReconciliationJob(new(MockReconciler), "every minute", time.Minute, 10, discardLogger)

	require.Error(t, job.Start())
}

func TestReconciliationJob_RunsOnSchedule(t *testing.T) {
	handler := new(MockReconciler)
	called := make(chan struct{}, 1)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return([]commands.Anomaly{{OrderID: "o-1", Kind: commands.AnomalyPOSSyncMissing}}, nil).
		Run(func(mock.Arguments) {
			select {
			case called <- struct{}{}:
			default:
			}
		})

	job := NewReconciliationJob(handler, "* * * * * *", time.Minute, 10, discardLogger)
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-called:
	case <-time.After(3 * time.Second):
		t.Fatal("Reconciliation did not run")
	}
}

func TestReconciliationJob_RunSurvivesHandlerError(t *testing.T) {
	handler := new(MockReconciler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("store down")).Once()
	cmd, err := commands.NewReconcileOrdersCommand(time.Minute, 10)
	require.NoError(t, err)

	job := NewReconciliationJob(handler, "* * * * * *", time.Minute, 10, discardLogger)
	assert.NotPanics(t, func() { job.Run(t.Context(), cmd) })

	handler.AssertExpectations(t)
}

func TestJobManager_EmptyScheduleDisablesSweep(t *testing.T) {
	jm := NewJobManager(commands.ReconcileOrdersCommandHandler{}, ReconciliationSettings{}, discardLogger)

	require.NoError(t, jm.StartAll())
	jm.StopAll()
	assert.Nil(t, jm.reconciliationJob)
}
