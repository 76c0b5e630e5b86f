// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic maintenance required by the service.
//
// # Available Jobs
//
// 1. LedgerExpiryJob - Runs every minute to evict idempotency ledger entries
// older than the configured retention window
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the ledger and retention window
//	jobManager := jobs.NewJobManager(ledger, ledgerTTL, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The expiry job uses the cron expression "* * * * *", running once a minute.
// Expiry is disabled when the retention window is zero, in which case ledger
// entries live for the lifetime of the process.
//
// # Error Handling
//
// Pruning failures are logged and retried on the next tick; a failed run
// never stops the schedule.
package jobs
