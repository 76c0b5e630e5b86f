// Package memory provides the in-process storage adapters: an order
// repository and an idempotency ledger over plain maps. This is the default
// backend; the process owns all mutable state and state does not survive a
// restart.
//
// Both adapters are safe for concurrent use. They guard their maps with a
// read-write mutex and hand out snapshot copies of aggregates, so a caller
// mutating a fetched order never aliases stored state; changes become visible
// only through Update.
package memory

import (
	"context"
	"fmt"
	"sync"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over a map.
// A separate slice records insertion order so that GetAll scans
// deterministically within a process run.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
	scan   []string
}

// NewOrderRepository creates an empty in-memory order repository.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*order.Order),
	}
}

// Add stores a new order. The identifier must not be in use.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := aggregate.ID().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[key]; exists {
		return fmt.Errorf("order %s already exists", key)
	}

	snapshot := *aggregate
	r.orders[key] = &snapshot
	r.scan = append(r.scan, key)
	return nil
}

// Update replaces the stored order with the given aggregate state.
// Returns an ObjectNotFoundError if the order was never added.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	key := aggregate.ID().String()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[key]; !exists {
		return errs.NewObjectNotFoundError("orderId", key)
	}

	snapshot := *aggregate
	r.orders[key] = &snapshot
	return nil
}

// Get retrieves an order by ID. The returned aggregate is a snapshot copy.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.orders[id.String()]
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}

	snapshot := *stored
	return &snapshot, nil
}

// GetAll returns snapshot copies of every stored order in insertion order.
func (r *OrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*order.Order, 0, len(r.scan))
	for _, key := range r.scan {
		snapshot := *r.orders[key]
		all = append(all, &snapshot)
	}
	return all, nil
}
