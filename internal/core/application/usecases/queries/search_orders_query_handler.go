package queries

import (
	"context"
	"sort"

	"orderapi/internal/core/domain/model/order"
	"orderapi/internal/core/ports"
)

// SearchOrdersResult is the paginated read model returned by a search.
// TotalCount reflects the filtered set size before pagination slicing;
// Limit and Offset echo the normalized values actually applied.
type SearchOrdersResult struct {
	Orders     []*order.Order
	TotalCount int
	Limit      int
	Offset     int
}

// SearchOrdersQueryHandler retrieves a customer's orders from the repository.
//
// The handler scans the full store, filters by customer and placement window,
// sorts by placement time descending with a stable sort (ties keep the
// repository's insertion order, deterministic for a process run), and slices
// the page last.
type SearchOrdersQueryHandler struct {
	orders ports.OrderRepository
}

// NewSearchOrdersQueryHandler creates a handler for customer searches.
func NewSearchOrdersQueryHandler(orders ports.OrderRepository) SearchOrdersQueryHandler {
	return SearchOrdersQueryHandler{orders: orders}
}

// Handle executes the search and returns the paginated result.
func (h *SearchOrdersQueryHandler) Handle(ctx context.Context, query SearchOrdersQuery) (SearchOrdersResult, error) {
	if err := query.Validate(); err != nil {
		return SearchOrdersResult{}, err
	}

	all, err := h.orders.GetAll(ctx)
	if err != nil {
		return SearchOrdersResult{}, err
	}

	filtered := make([]*order.Order, 0, len(all))
	for _, o := range all {
		if !matches(o, query) {
			continue
		}
		filtered = append(filtered, o)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PlacedAt().After(filtered[j].PlacedAt())
	})

	return SearchOrdersResult{
		Orders:     page(filtered, query.Offset(), query.Limit()),
		TotalCount: len(filtered),
		Limit:      query.Limit(),
		Offset:     query.Offset(),
	}, nil
}

func matches(o *order.Order, query SearchOrdersQuery) bool {
	if o.CustomerID() != query.CustomerID() {
		return false
	}
	if start := query.StartAt(); start != nil && o.PlacedAt().Before(*start) {
		return false
	}
	if end := query.EndAt(); end != nil && o.PlacedAt().After(*end) {
		return false
	}
	return true
}

func page(orders []*order.Order, offset, limit int) []*order.Order {
	if offset >= len(orders) {
		return []*order.Order{}
	}
	end := offset + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end]
}
