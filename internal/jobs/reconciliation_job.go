package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

type reconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileOrdersCommand) ([]commands.Anomaly, error)
}

// ReconciliationJob sweeps stale orders on a cron schedule and logs what it finds.
// Anomalies are reported only, never repaired.
type ReconciliationJob struct {
	handler    reconciler
	schedule   string
	staleAfter time.Duration
	limit      int
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewReconciliationJob creates the sweep. schedule is a six-field cron expression
// (seconds first), e.g. "0 */5 * * * *".
func NewReconciliationJob(
	handler reconciler,
	schedule string,
	staleAfter time.Duration,
	limit int,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:    handler,
		schedule:   schedule,
		staleAfter: staleAfter,
		limit:      limit,
		cron:       cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:     logger.With("component", "reconciliation_job"),
	}
}

// Start validates the parameters and schedules the sweep.
func (j *ReconciliationJob) Start() error {
	cmd, err := commands.NewReconcileOrdersCommand(j.staleAfter, j.limit)
	if err != nil {
		return err
	}

	if _, err = j.cron.AddFunc(j.schedule, func() { j.Run(context.Background(), cmd) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started",
		"schedule", j.schedule, "stale_after", j.staleAfter.String(), "limit", j.limit)
	return nil
}

// Run performs one sweep.
func (j *ReconciliationJob) Run(ctx context.Context, cmd commands.ReconcileOrdersCommand) {
	anomalies, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation job failed", "error", err)
		return
	}
	if len(anomalies) > 0 {
		j.logger.WarnContext(ctx, "Reconciliation found anomalies", "count", len(anomalies))
	}
}

// Stop stops scheduling and waits for a running sweep to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}
