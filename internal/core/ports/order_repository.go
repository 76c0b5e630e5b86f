// Package ports defines the driven-side contracts of the application core.
// Adapters (in-memory, postgres, redis) implement these interfaces; use case
// handlers depend on them and never on a concrete storage technology.
package ports

import (
	"context"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// It is a minimal key-value contract: insert, point lookup, full scan,
// and in-place update. The repository exclusively owns stored records;
// callers must write back through Update after mutating an aggregate.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns an ObjectNotFoundError if no order has the identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAll retrieves every stored order in insertion order.
	// The scan order is deterministic for a single process run; callers
	// relying on it for stable sorting must not reorder equal elements.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
