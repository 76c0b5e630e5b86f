// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-key mutual
// exclusion, and persistence through the repository ports.
package commands

import (
	"errors"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/pkg/errs"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// ItemInput carries the raw line-item fields of a create request.
// Values are validated only when the request turns out not to be a replay;
// a replayed idempotency key returns the stored order without re-validation.
type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice float64
}

// CreateOrderCommand represents a request to create a new order under an
// idempotency key. The key is the only field validated at construction:
// everything else is checked by the handler after the ledger lookup, so a
// replay returns the originally created order regardless of the payload
// accompanying the retry.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("cust-42",
//	    []ItemInput{{ProductID: "prod-001", Quantity: 2, UnitPrice: 29.99}},
//	    "4f9c1d2e-6a3b-4c8d-9e0f-112233445566")
//	if err != nil {
//	    return fmt.Errorf("invalid create request: %w", err)
//	}
//
//	created, isNew, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID     string
	items          []ItemInput
	idempotencyKey string

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// The idempotency key must be non-empty; the rest of the payload is
// carried verbatim for the handler to validate on a ledger miss.
func NewCreateOrderCommand(customerID string, items []ItemInput, idempotencyKey string) (CreateOrderCommand, error) {
	if idempotencyKey == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("idempotencyKey")
	}

	return CreateOrderCommand{
		customerID:     customerID,
		items:          items,
		idempotencyKey: idempotencyKey,
		guard:          kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the identifier of the customer placing the order.
func (c CreateOrderCommand) CustomerID() string {
	return c.customerID
}

// IdempotencyKey returns the client-supplied idempotency key.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

// domainItems validates the raw items and materializes them as domain
// line items. Checks run in request order: the items list must be
// non-empty, then every item must construct cleanly. The first failure
// is returned.
func (c CreateOrderCommand) domainItems() ([]order.Item, error) {
	if len(c.items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	items := make([]order.Item, 0, len(c.items))
	for _, input := range c.items {
		item, err := order.NewItem(input.ProductID, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
