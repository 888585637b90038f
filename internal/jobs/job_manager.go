package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
)

// ReconciliationSettings configure the scheduled sweep. An empty Schedule disables it.
type ReconciliationSettings struct {
	Schedule   string
	StaleAfter time.Duration
	Limit      int
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reconciliationJob *ReconciliationJob
}

// NewJobManager creates a job manager with all configured jobs.
func NewJobManager(
	reconcileHandler commands.ReconcileOrdersCommandHandler,
	settings ReconciliationSettings,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if settings.Schedule != "" {
		jm.reconciliationJob = NewReconciliationJob(
			reconcileHandler, settings.Schedule, settings.StaleAfter, settings.Limit, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.reconciliationJob == nil {
		return nil
	}
	if err := jm.reconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.reconciliationJob != nil {
		jm.reconciliationJob.Stop()
	}
}
