package order

import (
	"errors"
	"math"
	"time"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a customer order. It is the aggregate root that manages
// the order lifecycle from placement through status transitions to a terminal state.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty customer identifier
//   - Must have at least one valid line item; items are immutable after creation
//   - Total amount equals the sum of quantity x unit price over the items,
//     rounded half-up to two decimal places, computed exactly once at creation
//   - The placement timestamp is set once; the update timestamp moves on every mutation
//   - Status transitions follow the lifecycle transition table
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the customer who placed the order
	customerID string

	// items is the immutable list of line items
	items []Item

	// totalAmount is computed once at creation and never recomputed
	totalAmount float64

	// status represents the current state in the order lifecycle
	status Status

	// statusReason is the reason supplied with the latest transition that carried one.
	// A transition without a reason leaves the previous value in place.
	statusReason string

	// placedAt is the placement timestamp, immutable after creation
	placedAt time.Time

	// updatedAt moves on every status change
	updatedAt time.Time

	// isConstructed ensures the order was created via a factory function
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// a fresh order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - customerID: Identifier of the placing customer (must be non-empty)
//   - items: Line items (must be non-empty; each item must be constructed via NewItem)
//   - placedAt: Placement instant; also used as the initial update timestamp
//
// The created order starts in Pending status with its total amount computed
// from the items. Validation failures are returned in input order, first
// failure first.
func NewOrder(id kernel.UUID, customerID string, items []Item, placedAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := o.setID(id); err != nil {
		return nil, err
	}
	if err := o.setCustomerID(customerID); err != nil {
		return nil, err
	}
	if err := o.setItems(items); err != nil {
		return nil, err
	}

	o.totalAmount = roundAmount(sumItems(o.items))
	o.placedAt = placedAt.UTC()
	o.updatedAt = o.placedAt

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without recomputing
// derived values. The stored total amount is taken verbatim.
//
// This function is used by persistence adapters when rehydrating aggregates.
// The status must be a valid lifecycle status; items and identifiers are
// validated as in NewOrder.
func RestoreOrder(
	id kernel.UUID,
	customerID string,
	items []Item,
	totalAmount float64,
	status Status,
	statusReason string,
	placedAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := o.setID(id); err != nil {
		return nil, err
	}
	if err := o.setCustomerID(customerID); err != nil {
		return nil, err
	}
	if err := o.setItems(items); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o.totalAmount = totalAmount
	o.status = status
	o.statusReason = statusReason
	o.placedAt = placedAt.UTC()
	o.updatedAt = updatedAt.UTC()

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory function.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
// Orders are considered equal if they have the same ID.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() string {
	return o.customerID
}

// Items returns the order's line items.
// The returned slice is a copy; items themselves are immutable.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// TotalAmount returns the total computed at creation.
func (o *Order) TotalAmount() float64 {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusReason returns the reason recorded with the latest transition
// that supplied one. Empty if no transition ever carried a reason.
func (o *Order) StatusReason() string {
	return o.statusReason
}

// PlacedAt returns the placement timestamp.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// UpdatedAt returns the timestamp of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// ChangeStatus transitions the order to the target status.
//
// This method enforces the following business rules:
//   - The target must be a valid lifecycle status
//   - The transition must be permitted by the transition table
//
// On success the status is updated, the update timestamp is set to the given
// instant, and, if a reason is supplied, it replaces the stored reason. A nil
// reason leaves the previously stored reason untouched, so reasons are sticky
// across transitions that omit one.
//
// Returns:
//   - nil on a successful transition
//   - a ValueIsInvalidError if the target is not a valid status
//   - an InvalidStatusTransitionError if the transition is not permitted
//
// The order is left completely unchanged when an error is returned.
func (o *Order) ChangeStatus(target Status, reason *string, at time.Time) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.updatedAt = at.UTC()
	if reason != nil {
		o.statusReason = *reason
	}
	return nil
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the customer identifier.
// This is a private method used only during construction.
func (o *Order) setCustomerID(customerID string) error {
	if customerID == "" {
		return errs.NewValueIsRequiredError("customerId")
	}
	o.customerID = customerID
	return nil
}

// setItems validates and sets the line items.
// At least one item is required, and every item must have been
// constructed through NewItem.
func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

// sumItems totals the unrounded subtotals of the given items.
func sumItems(items []Item) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

// roundAmount rounds a monetary amount half-up to two decimal places.
// Amounts are never negative here, so math.Round's half-away-from-zero
// matches half-up.
func roundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
