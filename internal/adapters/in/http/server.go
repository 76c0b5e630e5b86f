// Package http provides the inbound HTTP adapter: an echo server exposing
// the order API, request/response contracts, bearer-token middleware, and
// the mapping from use-case errors to the uniform error body.
package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"orderapi/internal/core/application/usecases/commands"
	"orderapi/internal/core/application/usecases/queries"
	"orderapi/internal/core/domain/model/kernel"
)

// Server handles HTTP requests for the order API.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler     queries.GetOrderQueryHandler
	searchOrdersHandler queries.SearchOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	searchOrdersHandler queries.SearchOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		searchOrdersHandler:      searchOrdersHandler,
	}
}

// NewEcho builds the echo instance with routing, middleware, and the uniform
// error handler. Everything under /orders requires a bearer token; /health
// does not.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/health", s.Health)

	orders := e.Group("/orders", BearerAuth())
	orders.POST("", s.CreateOrder)
	orders.GET("", s.SearchOrders)
	orders.GET("/:orderId", s.GetOrder)
	orders.PATCH("/:orderId/status", s.ChangeOrderStatus)

	return e
}

// CreateOrder handles POST /orders - creates a new order under an
// idempotency key. A replayed key returns the originally created order
// with status 200 instead of 201.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, "malformed request body")
	}

	idempotencyKey := ctx.Request().Header.Get("Idempotency-Key")

	cmd, err := commands.NewCreateOrderCommand(request.CustomerID, toItemInputs(request.Items), idempotencyKey)
	if err != nil {
		return mapError(ctx, err)
	}

	created, isNew, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	return ctx.JSON(status, toOrderResponse(created))
}

// GetOrder handles GET /orders/:orderId - retrieves a single order.
// An identifier that is not a UUID can name no order, so it reports 404
// rather than a validation failure.
func (s *Server) GetOrder(ctx echo.Context) error {
	rawID := ctx.Param("orderId")

	orderID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return writeError(ctx, http.StatusNotFound, CodeNotFound, "object not found: "+rawID)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return mapError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(found))
}

// SearchOrders handles GET /orders - retrieves a customer's orders with
// optional date filtering and pagination.
func (s *Server) SearchOrders(ctx echo.Context) error {
	limit, err := queryInt(ctx, "limit")
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, "value is invalid: limit")
	}
	offset, err := queryInt(ctx, "offset")
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, "value is invalid: offset")
	}

	query, err := queries.NewSearchOrdersQuery(
		ctx.QueryParam("customerId"),
		ctx.QueryParam("startDate"),
		ctx.QueryParam("endDate"),
		limit,
		offset,
	)
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.searchOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toSearchOrdersResponse(result))
}

// ChangeOrderStatus handles PATCH /orders/:orderId/status - moves an order
// along its lifecycle. Existence is checked before the body is validated,
// so an unknown order reports 404 even when the body is also invalid.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	rawID := ctx.Param("orderId")

	orderID, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return writeError(ctx, http.StatusNotFound, CodeNotFound, "object not found: "+rawID)
	}

	var request ChangeStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, CodeValidationError, "malformed request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, request.Status, request.Reason)
	if err != nil {
		return mapError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// Health handles GET /health - liveness without authentication.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func queryInt(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
