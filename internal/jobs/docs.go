// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// ReconciliationJob periodically lists orders that have not changed for a while
// and reports those whose POS or courier state is missing or contradicts their
// status. Findings are logged for an operator and never repaired automatically.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, jobs.ReconciliationSettings{
//		Schedule:   "0 */5 * * * *",
//		StaleAfter: 15 * time.Minute,
//		Limit:      500,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Overlapping ticks are
// skipped while a sweep is still running.
package jobs
