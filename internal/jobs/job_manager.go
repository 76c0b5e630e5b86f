package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderapi/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	ledgerExpiryJob *LedgerExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
// A zero or negative ledger TTL disables ledger expiry entirely.
func NewJobManager(ledger ports.IdempotencyLedger, ledgerTTL time.Duration, logger *slog.Logger) *JobManager {
	jm := &JobManager{}
	if ledgerTTL > 0 {
		jm.ledgerExpiryJob = NewLedgerExpiryJob(ledger, ledgerTTL, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.ledgerExpiryJob != nil {
		if err := jm.ledgerExpiryJob.Start(); err != nil {
			return fmt.Errorf("failed to start ledger expiry job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.ledgerExpiryJob != nil {
		jm.ledgerExpiryJob.Stop()
	}
}
