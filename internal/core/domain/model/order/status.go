package order

import (
	"fmt"

	"orderapi/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	pending ──> confirmed ──> processing ──> shipped ──> delivered
//	   │            │              │
//	   └────────────┴──────────────┴──> cancelled
//
// delivered and cancelled are terminal states with no outgoing transitions.
// Self-transitions are never permitted.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is first created.
	// It is the sole entry point of the lifecycle.
	Pending

	// Confirmed indicates the order has been accepted for fulfilment.
	Confirmed

	// Processing indicates the order is being prepared.
	Processing

	// Shipped indicates the order has left the warehouse.
	// Shipped orders can no longer be cancelled.
	Shipped

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was aborted before shipping.
	// This is a terminal state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation and parsing.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		Confirmed:  "confirmed",
		Processing: "processing",
		Shipped:    "shipped",
		Delivered:  "delivered",
		Cancelled:  "cancelled",
	}
}

// getStatusTransitions returns the directed transition table of the lifecycle.
// A status maps to the set of statuses it may move to. Terminal statuses map
// to an empty set. A status never appears in its own target set.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:    {Confirmed, Cancelled},
		Confirmed:  {Processing, Cancelled},
		Processing: {Shipped, Cancelled},
		Shipped:    {Delivered},
		Delivered:  {},
		Cancelled:  {},
	}
}

// StatusFromString parses a status from its wire representation.
//
// Returns:
//   - the matching Status for "pending", "confirmed", "processing",
//     "shipped", "delivered", or "cancelled"
//   - an error if the string names no status in the enumeration
//
// Parsing is exact; no case folding or trimming is applied.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Confirmed, Processing, Shipped, Delivered, Cancelled.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
//
// Returns:
//   - the lowercase status name for valid statuses
//   - "unknown" for invalid status values
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status has no outgoing transitions.
// Delivered and Cancelled are the terminal statuses of the lifecycle.
func (s Status) IsTerminal() bool {
	return len(getStatusTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the lifecycle permits moving from the
// current status to the target status, without performing the transition.
//
// Returns false for unknown statuses, terminal statuses, and self-transitions.
// This method provides transition validation without side effects.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range getStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo moves the status to the target per the transition table.
//
// Validation order:
//  1. The target must be a valid status; otherwise a ValueIsInvalidError
//     is returned, distinct from a transition-rule violation.
//  2. The transition must be present in the current status's target set;
//     otherwise an InvalidStatusTransitionError carrying both the current
//     and the requested status is returned.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (0, error) if the transition is not allowed
//
// This method is used by Order.ChangeStatus() to enforce state transitions.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidStatusTransitionError(s.String(), target.String())
	}

	return target, nil
}
