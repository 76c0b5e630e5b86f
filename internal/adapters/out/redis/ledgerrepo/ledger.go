// Package ledgerrepo provides a Redis-backed idempotency ledger. Keys are
// namespaced under a fixed prefix and carry the recorded order ID as their
// value. Expiry is delegated to Redis key TTLs, so the background pruning
// job has nothing to do against this backend.
package ledgerrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"
)

const keyPrefix = "orderapi:idempotency"

// RedisIdempotencyLedger implements ports.IdempotencyLedger on a Redis client.
type RedisIdempotencyLedger struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisIdempotencyLedger creates a ledger on the given Redis address.
// A zero ttl means entries never expire.
func NewRedisIdempotencyLedger(addr string, ttl time.Duration) *RedisIdempotencyLedger {
	return &RedisIdempotencyLedger{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// Get looks up the order recorded under the given idempotency key.
func (l *RedisIdempotencyLedger) Get(ctx context.Context, key string) (kernel.UUID, bool, error) {
	if key == "" {
		return kernel.UUID{}, false, errs.NewValueIsRequiredError("key")
	}

	raw, err := l.client.Get(ctx, l.ledgerKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return kernel.UUID{}, false, nil
	}
	if err != nil {
		return kernel.UUID{}, false, err
	}

	orderID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false, err
	}
	return orderID, true, nil
}

// Put records the order created under the given idempotency key, with the
// configured TTL applied by Redis.
func (l *RedisIdempotencyLedger) Put(ctx context.Context, key string, orderID kernel.UUID) error {
	if key == "" {
		return errs.NewValueIsRequiredError("key")
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	return l.client.Set(ctx, l.ledgerKey(key), orderID.String(), l.ttl).Err()
}

// PruneExpired is a no-op; Redis evicts expired keys itself.
func (l *RedisIdempotencyLedger) PruneExpired(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}

func (l *RedisIdempotencyLedger) ledgerKey(key string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, key)
}
