package commands

import (
	"context"
	"time"

	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/core/ports"
	"orderapi/internal/pkg/errs"
	"orderapi/internal/pkg/keylock"
)

// ChangeOrderStatusCommandHandler handles order status transitions.
//
// The read-modify-write of a single order runs inside one critical section
// per order identifier: two concurrent transitions on the same order apply
// sequentially, each validated against the state left by the other. Orders
// are independent units of concurrency control, so transitions on different
// orders never contend.
type ChangeOrderStatusCommandHandler struct {
	orders ports.OrderRepository
	keys   *keylock.KeyedMutex
}

// NewChangeOrderStatusCommandHandler creates a handler for status transitions.
// The keyed mutex scopes the update critical section to the order identifier.
func NewChangeOrderStatusCommandHandler(orders ports.OrderRepository, keys *keylock.KeyedMutex) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		orders: orders,
		keys:   keys,
	}
}

// Handle processes the status change command.
//
// Checks run in this order:
//  1. The order must exist (not-found takes precedence over body validation)
//  2. The status field must be present
//  3. The status must name a value in the lifecycle enumeration
//  4. The transition must be legal per the transition table
//
// On success the order is persisted with its new status, refreshed update
// timestamp, and (when supplied) the new reason. Nothing is persisted when
// any check fails.
func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.keys.Lock(cmd.OrderID().String())
	defer h.keys.Unlock(cmd.OrderID().String())

	existing, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if cmd.Status() == "" {
		return nil, errs.NewValueIsRequiredError("status")
	}

	target, err := order.StatusFromString(cmd.Status())
	if err != nil {
		return nil, err
	}

	if err = existing.ChangeStatus(target, cmd.Reason(), time.Now()); err != nil {
		return nil, err
	}

	if err = h.orders.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}
