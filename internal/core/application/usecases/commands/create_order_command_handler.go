package commands

import (
	"context"
	"time"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/core/ports"
	"orderapi/internal/pkg/errs"
	"orderapi/internal/pkg/keylock"
)

// CreateOrderCommandHandler handles the business logic for order creation.
//
// Creation is idempotent: the handler consults the idempotency ledger before
// anything else, and a key that already maps to an order short-circuits into
// returning that order. The ledger check, the order insert, and the ledger
// record run inside one critical section per idempotency key, so two
// concurrent creates carrying the same key yield exactly one persisted order
// and both observe it.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(orders, ledger, keylock.New())
//	cmd, _ := NewCreateOrderCommand("cust-42", items, key)
//
//	created, isNew, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// isNew is false when the key was a replay
type CreateOrderCommandHandler struct {
	orders ports.OrderRepository
	ledger ports.IdempotencyLedger
	keys   *keylock.KeyedMutex
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// The keyed mutex scopes the create critical section to the idempotency key.
func NewCreateOrderCommandHandler(
	orders ports.OrderRepository,
	ledger ports.IdempotencyLedger,
	keys *keylock.KeyedMutex,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		orders: orders,
		ledger: ledger,
		keys:   keys,
	}
}

// Handle processes the create command.
//
// Returns the created or replayed order and whether it was newly created.
// On a ledger miss the payload is validated (customer, items list, each
// item), the total is computed once, and the order is persisted in Pending
// status before the key is recorded. On a hit the stored order is returned
// verbatim with no re-validation of the payload.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	h.keys.Lock(cmd.IdempotencyKey())
	defer h.keys.Unlock(cmd.IdempotencyKey())

	if orderID, found, err := h.ledger.Get(ctx, cmd.IdempotencyKey()); err != nil {
		return nil, false, err
	} else if found {
		existing, getErr := h.orders.Get(ctx, orderID)
		if getErr != nil {
			return nil, false, getErr
		}
		return existing, false, nil
	}

	if cmd.CustomerID() == "" {
		return nil, false, errs.NewValueIsRequiredError("customerId")
	}

	items, err := cmd.domainItems()
	if err != nil {
		return nil, false, err
	}

	newOrder, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), items, time.Now())
	if err != nil {
		return nil, false, err
	}

	if err = h.orders.Add(ctx, newOrder); err != nil {
		return nil, false, err
	}

	if err = h.ledger.Put(ctx, cmd.IdempotencyKey(), newOrder.ID()); err != nil {
		return nil, false, err
	}

	return newOrder, true, nil
}
