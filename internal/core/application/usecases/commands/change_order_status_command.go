package commands

import (
	"errors"

	"orderapi/internal/core/domain/model/kernel"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand represents a request to move an order to a new
// lifecycle status, optionally recording a reason.
//
// The status is carried as its raw wire string: the handler resolves the
// order before parsing it, so an unknown order identifier reports not-found
// even when the body is malformed.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	status  string
	reason  *string

	guard kernel.ConstructorGuard
}

// NewChangeOrderStatusCommand creates a command to transition the order's status.
// Validates that the order identifier is a constructed UUID; the status string
// and reason are validated by the handler after the order is resolved.
func NewChangeOrderStatusCommand(orderID kernel.UUID, status string, reason *string) (ChangeOrderStatusCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return ChangeOrderStatusCommand{
		orderID: orderID,
		status:  status,
		reason:  reason,
		guard:   kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrChangeOrderStatusCommandIsNotConstructed if validation fails.
func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the requested target status as supplied on the wire.
func (c ChangeOrderStatusCommand) Status() string {
	return c.status
}

// Reason returns the optional transition reason, nil when none was supplied.
func (c ChangeOrderStatusCommand) Reason() *string {
	return c.reason
}
