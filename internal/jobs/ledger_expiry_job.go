package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"orderapi/internal/core/ports"
)

// LedgerExpiryJob prunes idempotency ledger entries once their retention
// window has passed. Runs every minute against backends that hold entries
// in process memory; backends with native expiry report zero removals.
type LedgerExpiryJob struct {
	ledger ports.IdempotencyLedger
	ttl    time.Duration
	cron   *cron.Cron
	logger *slog.Logger
}

// NewLedgerExpiryJob creates a new job that evicts ledger entries older
// than the given retention window.
func NewLedgerExpiryJob(ledger ports.IdempotencyLedger, ttl time.Duration, logger *slog.Logger) *LedgerExpiryJob {
	return &LedgerExpiryJob{
		ledger: ledger,
		ttl:    ttl,
		cron:   cron.New(),
		logger: logger.With("component", "ledger_expiry_job"),
	}
}

// Start begins the ledger expiry job to run every minute.
func (j *LedgerExpiryJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cutoff := time.Now().Add(-j.ttl)

		removed, pruneErr := j.ledger.PruneExpired(ctx, cutoff)
		if pruneErr != nil {
			j.logger.ErrorContext(ctx, "Ledger expiry job failed", "error", pruneErr)
			return
		}

		if removed > 0 {
			j.logger.InfoContext(ctx, "Pruned expired idempotency entries", "removed", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ledger expiry job started (running every minute)", "ttl", j.ttl.String())
	return nil
}

// Stop stops the ledger expiry job.
func (j *LedgerExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ledger expiry job stopped")
}
