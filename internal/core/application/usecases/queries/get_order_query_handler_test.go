package queries_test

import (
	"testing"
	"time"

	"orderapi/internal/core/application/usecases/queries"
	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	t.Run("should create query with valid ID", func(t *testing.T) {
		id := kernel.NewUUID()

		query, err := queries.NewGetOrderQuery(id)

		require.NoError(t, err)
		assert.True(t, query.OrderID().IsEqual(id))
		assert.NoError(t, query.Validate())
	})

	t.Run("should reject an unconstructed ID", func(t *testing.T) {
		var id kernel.UUID

		_, err := queries.NewGetOrderQuery(id)

		require.Error(t, err)
	})
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should return the stored order", func(t *testing.T) {
		id := kernel.NewUUID()
		stored := restoredOrder(t, "cust-42", time.Now().UTC())

		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, id).Return(stored, nil).Once()

		h := queries.NewGetOrderQueryHandler(repo)
		query, _ := queries.NewGetOrderQuery(id)
		got, err := h.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, got.IsEqual(stored))
		repo.AssertExpectations(t)
	})

	t.Run("should pass through not-found errors", func(t *testing.T) {
		id := kernel.NewUUID()

		repo := new(MockOrderRepository)
		repo.On("Get", mock.Anything, id).
			Return(nil, errs.NewObjectNotFoundError("orderId", id.String())).Once()

		h := queries.NewGetOrderQueryHandler(repo)
		query, _ := queries.NewGetOrderQuery(id)
		_, err := h.Handle(ctx, query)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject zero-value query", func(t *testing.T) {
		repo := new(MockOrderRepository)
		h := queries.NewGetOrderQueryHandler(repo)
		var query queries.GetOrderQuery

		_, err := h.Handle(ctx, query)

		require.Error(t, err)
		assert.Equal(t, queries.ErrGetOrderQueryIsNotConstructed, err)
	})
}
