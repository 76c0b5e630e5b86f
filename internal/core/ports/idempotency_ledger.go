package ports

import (
	"context"
	"time"

	"orderapi/internal/core/domain/model/kernel"
)

// IdempotencyLedger maps client-supplied idempotency keys to the order they
// produced. A key is recorded on first use and never updated; a later create
// carrying the same key is a replay and must return the recorded order.
//
// Entries do not expire by default. Backends may support expiry when the
// process is configured with a TTL: the redis backend relies on native key
// TTLs, the in-memory backend is pruned by a background job via PruneExpired.
type IdempotencyLedger interface {
	// Get looks up the order identifier recorded for the key.
	// The second return value reports whether the key was present.
	Get(ctx context.Context, key string) (kernel.UUID, bool, error)

	// Put records the key -> order identifier mapping.
	// Recording an already-present key is a contract violation by the caller;
	// callers must hold the per-key critical section across Get and Put.
	Put(ctx context.Context, key string, orderID kernel.UUID) error

	// PruneExpired removes entries recorded before the given instant and
	// returns how many were removed. Backends with native expiry return 0.
	PruneExpired(ctx context.Context, before time.Time) (int, error)
}
