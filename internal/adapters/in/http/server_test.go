package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpin "orderapi/internal/adapters/in/http"
	"orderapi/internal/adapters/out/memory"
	"orderapi/internal/core/application/usecases/commands"
	"orderapi/internal/core/application/usecases/queries"
	"orderapi/internal/pkg/keylock"
)

func newTestAPI() *echo.Echo {
	orders := memory.NewOrderRepository()
	ledger := memory.NewIdempotencyLedger()

	createHandler := commands.NewCreateOrderCommandHandler(orders, ledger, keylock.New())
	changeStatusHandler := commands.NewChangeOrderStatusCommandHandler(orders, keylock.New())
	getHandler := queries.NewGetOrderQueryHandler(orders)
	searchHandler := queries.NewSearchOrdersQueryHandler(orders)

	server := httpin.NewServer(createHandler, changeStatusHandler, getHandler, searchHandler)
	return httpin.NewEcho(server)
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer test-token")
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func createOrderBody(customerID string) string {
	return fmt.Sprintf(`{
		"customerId": %q,
		"items": [
			{"productId": "prod-1", "quantity": 2, "unitPrice": 9.99},
			{"productId": "prod-2", "quantity": 1, "unitPrice": 55.50}
		]
	}`, customerID)
}

func createOrder(t *testing.T, e *echo.Echo, customerID, key string) map[string]any {
	t.Helper()

	rec := doRequest(t, e, http.MethodPost, "/orders", createOrderBody(customerID),
		map[string]string{"Idempotency-Key": key})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)
}

func Test_Health(t *testing.T) {
	e := newTestAPI()

	t.Run("should respond without authentication", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "healthy", body["status"])
		assert.NotEmpty(t, body["timestamp"])
	})
}

func Test_BearerAuth(t *testing.T) {
	e := newTestAPI()

	t.Run("should reject a request without an authorization header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders?customerId=cust-1", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeBody(t, rec)["error"])
	})

	t.Run("should reject an empty bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orders?customerId=cust-1", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer ")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeBody(t, rec)["error"])
	})

	t.Run("should accept any non-empty bearer token", func(t *testing.T) {
		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func Test_CreateOrder(t *testing.T) {
	t.Run("should create an order and compute the total", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("cust-1"),
			map[string]string{"Idempotency-Key": "key-1"})

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["orderId"])
		assert.Equal(t, "cust-1", body["customerId"])
		assert.Equal(t, "pending", body["status"])
		assert.InDelta(t, 75.48, body["totalAmount"], 0.0001)
		assert.NotEmpty(t, body["placedAt"])
		assert.Equal(t, body["placedAt"], body["lastUpdated"])
	})

	t.Run("should reject a missing idempotency key", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("cust-1"), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should reject a missing customer id", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodPost, "/orders", createOrderBody(""),
			map[string]string{"Idempotency-Key": "key-1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should reject an empty item list", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodPost, "/orders",
			`{"customerId": "cust-1", "items": []}`,
			map[string]string{"Idempotency-Key": "key-1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should reject zero and negative item values", func(t *testing.T) {
		e := newTestAPI()

		cases := []string{
			`{"customerId": "c", "items": [{"productId": "p", "quantity": 0, "unitPrice": 1}]}`,
			`{"customerId": "c", "items": [{"productId": "p", "quantity": -1, "unitPrice": 1}]}`,
			`{"customerId": "c", "items": [{"productId": "p", "quantity": 1, "unitPrice": 0}]}`,
			`{"customerId": "c", "items": [{"productId": "p", "quantity": 1, "unitPrice": -1}]}`,
			`{"customerId": "c", "items": [{"quantity": 1, "unitPrice": 1}]}`,
		}

		for i, body := range cases {
			rec := doRequest(t, e, http.MethodPost, "/orders", body,
				map[string]string{"Idempotency-Key": fmt.Sprintf("key-%d", i)})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
		}
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodPost, "/orders", `{"customerId": `,
			map[string]string{"Idempotency-Key": "key-1"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})
}

func Test_CreateOrder_IdempotentReplay(t *testing.T) {
	t.Run("should return the original order on a replayed key", func(t *testing.T) {
		e := newTestAPI()

		first := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("cust-1"),
			map[string]string{"Idempotency-Key": "key-1"})
		require.Equal(t, http.StatusCreated, first.Code)

		second := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("cust-1"),
			map[string]string{"Idempotency-Key": "key-1"})
		require.Equal(t, http.StatusOK, second.Code)

		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("should ignore a differing replay payload", func(t *testing.T) {
		e := newTestAPI()

		first := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("cust-1"),
			map[string]string{"Idempotency-Key": "key-1"})
		require.Equal(t, http.StatusCreated, first.Code)

		replay := doRequest(t, e, http.MethodPost, "/orders", createOrderBody("someone-else"),
			map[string]string{"Idempotency-Key": "key-1"})
		require.Equal(t, http.StatusOK, replay.Code)

		assert.JSONEq(t, first.Body.String(), replay.Body.String())
	})

	t.Run("should create distinct orders for distinct keys", func(t *testing.T) {
		e := newTestAPI()

		first := createOrder(t, e, "cust-1", "key-1")
		second := createOrder(t, e, "cust-1", "key-2")

		assert.NotEqual(t, first["orderId"], second["orderId"])
	})
}

func Test_GetOrder(t *testing.T) {
	t.Run("should return a created order", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")

		rec := doRequest(t, e, http.MethodGet, "/orders/"+created["orderId"].(string), "", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, created["orderId"], body["orderId"])
		assert.Equal(t, "cust-1", body["customerId"])
	})

	t.Run("should return not found for an unknown id", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/orders/0e72fbb0-1e2b-4a9e-a59f-57cd4ad45b63", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["error"])
	})

	t.Run("should return not found for a non-uuid id", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/orders/not-a-uuid", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["error"])
	})
}

func Test_SearchOrders(t *testing.T) {
	t.Run("should require a customer id", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/orders", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should reject a malformed date", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1&startDate=15-03-2026", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should return only the customer's orders, newest first", func(t *testing.T) {
		e := newTestAPI()

		first := createOrder(t, e, "cust-1", "key-1")
		createOrder(t, e, "cust-2", "key-2")
		third := createOrder(t, e, "cust-1", "key-3")

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		orders := body["orders"].([]any)
		require.Len(t, orders, 2)
		assert.EqualValues(t, 2, body["totalCount"])

		ids := []any{
			orders[0].(map[string]any)["orderId"],
			orders[1].(map[string]any)["orderId"],
		}
		assert.Contains(t, ids, first["orderId"])
		assert.Contains(t, ids, third["orderId"])
	})

	t.Run("should clamp an oversized limit and echo it", func(t *testing.T) {
		e := newTestAPI()
		createOrder(t, e, "cust-1", "key-1")

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1&limit=500", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.EqualValues(t, 100, body["limit"])
		assert.EqualValues(t, 0, body["offset"])
	})

	t.Run("should apply defaults when limit and offset are absent", func(t *testing.T) {
		e := newTestAPI()
		createOrder(t, e, "cust-1", "key-1")

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.EqualValues(t, 20, body["limit"])
		assert.EqualValues(t, 0, body["offset"])
	})

	t.Run("should reject a non-numeric limit", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1&limit=lots", "", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should paginate with totalCount of the filtered set", func(t *testing.T) {
		e := newTestAPI()
		for i := range 5 {
			createOrder(t, e, "cust-1", fmt.Sprintf("key-%d", i))
		}

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1&limit=2&offset=4", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.EqualValues(t, 5, body["totalCount"])
		assert.Len(t, body["orders"].([]any), 1)
		assert.EqualValues(t, 2, body["limit"])
		assert.EqualValues(t, 4, body["offset"])
	})

	t.Run("should return an empty page for an offset past the end", func(t *testing.T) {
		e := newTestAPI()
		createOrder(t, e, "cust-1", "key-1")

		rec := doRequest(t, e, http.MethodGet, "/orders?customerId=cust-1&offset=50", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Empty(t, body["orders"])
		assert.EqualValues(t, 1, body["totalCount"])
	})
}

func Test_ChangeOrderStatus(t *testing.T) {
	patchStatus := func(t *testing.T, e *echo.Echo, orderID, body string) *httptest.ResponseRecorder {
		t.Helper()
		return doRequest(t, e, http.MethodPatch, "/orders/"+orderID+"/status", body, nil)
	}

	t.Run("should walk the full lifecycle to delivered", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		for _, target := range []string{"confirmed", "processing", "shipped", "delivered"} {
			rec := patchStatus(t, e, orderID, fmt.Sprintf(`{"status": %q}`, target))
			require.Equal(t, http.StatusOK, rec.Code, "transition to %s", target)
			assert.Equal(t, target, decodeBody(t, rec)["status"])
		}
	})

	t.Run("should record and keep a status reason", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "confirmed", "reason": "payment received"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "payment received", decodeBody(t, rec)["statusReason"])

		rec = patchStatus(t, e, orderID, `{"status": "processing"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "payment received", decodeBody(t, rec)["statusReason"])
	})

	t.Run("should allow cancelling before shipment", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "cancelled", "reason": "customer request"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "cancelled", decodeBody(t, rec)["status"])
	})

	t.Run("should reject an illegal transition with a conflict", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "shipped"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", decodeBody(t, rec)["error"])
	})

	t.Run("should reject transitions out of a terminal status", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "cancelled"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = patchStatus(t, e, orderID, `{"status": "confirmed"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", decodeBody(t, rec)["error"])
	})

	t.Run("should reject a self-transition", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "pending"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "INVALID_STATUS_TRANSITION", decodeBody(t, rec)["error"])
	})

	t.Run("should reject an unknown status value", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{"status": "teleported"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should reject a missing status field", func(t *testing.T) {
		e := newTestAPI()
		created := createOrder(t, e, "cust-1", "key-1")
		orderID := created["orderId"].(string)

		rec := patchStatus(t, e, orderID, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
	})

	t.Run("should report not found before validating the body", func(t *testing.T) {
		e := newTestAPI()

		rec := patchStatus(t, e, "0e72fbb0-1e2b-4a9e-a59f-57cd4ad45b63", `{"status": "teleported"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["error"])
	})
}

func Test_UnmatchedRoutes(t *testing.T) {
	t.Run("should answer unknown paths with the uniform not found body", func(t *testing.T) {
		e := newTestAPI()

		rec := doRequest(t, e, http.MethodGet, "/no-such-route", "", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "NOT_FOUND", body["error"])
		assert.NotEmpty(t, body["message"])
	})
}
