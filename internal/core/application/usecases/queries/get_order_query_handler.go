package queries

import (
	"context"

	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/core/ports"
)

// GetOrderQueryHandler retrieves single orders from the repository.
type GetOrderQueryHandler struct {
	orders ports.OrderRepository
}

// NewGetOrderQueryHandler creates a handler for point lookups.
func NewGetOrderQueryHandler(orders ports.OrderRepository) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders}
}

// Handle resolves the order, passing through the repository's
// ObjectNotFoundError for unknown identifiers.
func (h *GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.orders.Get(ctx, query.OrderID())
}
