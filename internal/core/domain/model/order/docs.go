// Package order provides domain entities and business logic for order management.
// It implements the Order aggregate root with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, line items, and lifecycle
//   - Item: An immutable line item value object with product, quantity, and unit price
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a customer identifier and at least one valid line item
//   - The total amount is computed exactly once at creation from the line items
//   - Order status follows a defined workflow:
//     pending -> confirmed -> processing -> shipped -> delivered,
//     with cancellation possible from pending, confirmed, and processing
//   - delivered and cancelled are terminal states with no outgoing transitions
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
