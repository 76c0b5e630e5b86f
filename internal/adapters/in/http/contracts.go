package http

import (
	"time"

	"orderapi/internal/core/application/usecases/commands"
	"orderapi/internal/core/application/usecases/queries"
	"orderapi/internal/core/domain/model/order"
)

// CreateOrderRequest is the body of POST /orders.
type CreateOrderRequest struct {
	CustomerID string        `json:"customerId"`
	Items      []ItemPayload `json:"items"`
}

// ItemPayload carries a single order line on the wire, in both requests
// and responses.
type ItemPayload struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// ChangeStatusRequest is the body of PATCH /orders/{orderId}/status.
// A nil Reason leaves the previously stored reason in place.
type ChangeStatusRequest struct {
	Status string  `json:"status"`
	Reason *string `json:"reason,omitempty"`
}

// OrderResponse is the wire representation of an order.
type OrderResponse struct {
	OrderID      string        `json:"orderId"`
	CustomerID   string        `json:"customerId"`
	Items        []ItemPayload `json:"items"`
	TotalAmount  float64       `json:"totalAmount"`
	Status       string        `json:"status"`
	StatusReason string        `json:"statusReason,omitempty"`
	PlacedAt     time.Time     `json:"placedAt"`
	LastUpdated  time.Time     `json:"lastUpdated"`
}

// SearchOrdersResponse is the paginated body of GET /orders.
type SearchOrdersResponse struct {
	Orders     []OrderResponse `json:"orders"`
	TotalCount int             `json:"totalCount"`
	Limit      int             `json:"limit"`
	Offset     int             `json:"offset"`
}

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func toItemInputs(payloads []ItemPayload) []commands.ItemInput {
	inputs := make([]commands.ItemInput, 0, len(payloads))
	for _, p := range payloads {
		inputs = append(inputs, commands.ItemInput{
			ProductID: p.ProductID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}
	return inputs
}

func toOrderResponse(aggregate *order.Order) OrderResponse {
	items := aggregate.Items()
	payloads := make([]ItemPayload, 0, len(items))
	for _, item := range items {
		payloads = append(payloads, ItemPayload{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderResponse{
		OrderID:      aggregate.ID().String(),
		CustomerID:   aggregate.CustomerID(),
		Items:        payloads,
		TotalAmount:  aggregate.TotalAmount(),
		Status:       aggregate.Status().String(),
		StatusReason: aggregate.StatusReason(),
		PlacedAt:     aggregate.PlacedAt(),
		LastUpdated:  aggregate.UpdatedAt(),
	}
}

func toSearchOrdersResponse(result queries.SearchOrdersResult) SearchOrdersResponse {
	orders := make([]OrderResponse, 0, len(result.Orders))
	for _, aggregate := range result.Orders {
		orders = append(orders, toOrderResponse(aggregate))
	}

	return SearchOrdersResponse{
		Orders:     orders,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	}
}
