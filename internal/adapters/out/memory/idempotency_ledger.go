package memory

import (
	"context"
	"sync"
	"time"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"
)

type ledgerEntry struct {
	orderID    kernel.UUID
	recordedAt time.Time
}

// IdempotencyLedger implements ports.IdempotencyLedger over a map.
// Entries carry the time they were recorded so that PruneExpired can
// evict them once a retention window has passed.
type IdempotencyLedger struct {
	mu      sync.RWMutex
	entries map[string]ledgerEntry
	now     func() time.Time
}

// NewIdempotencyLedger creates an empty in-memory idempotency ledger.
func NewIdempotencyLedger() *IdempotencyLedger {
	return &IdempotencyLedger{
		entries: make(map[string]ledgerEntry),
		now:     time.Now,
	}
}

// Get looks up the order recorded under the given idempotency key.
func (l *IdempotencyLedger) Get(_ context.Context, key string) (kernel.UUID, bool, error) {
	if key == "" {
		return kernel.UUID{}, false, errs.NewValueIsRequiredError("key")
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, found := l.entries[key]
	if !found {
		return kernel.UUID{}, false, nil
	}
	return entry.orderID, true, nil
}

// Put records the order created under the given idempotency key.
// A later Put for the same key overwrites the entry.
func (l *IdempotencyLedger) Put(_ context.Context, key string, orderID kernel.UUID) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[key] = ledgerEntry{orderID: orderID, recordedAt: l.now()}
	return nil
}

// PruneExpired removes every entry recorded before the given cutoff and
// returns how many it removed.
func (l *IdempotencyLedger) PruneExpired(_ context.Context, before time.Time) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if entry.recordedAt.Before(before) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed, nil
}
