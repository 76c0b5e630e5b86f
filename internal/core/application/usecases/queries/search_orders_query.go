package queries

import (
	"errors"
	"time"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"
)

var ErrSearchOrdersQueryIsNotConstructed = errors.New(
	"SearchOrdersQuery must be created via NewSearchOrdersQuery constructor",
)

const (
	// DefaultLimit is the page size used when the caller supplies none
	// (or a non-positive value, which the request contract treats as absent).
	DefaultLimit = 20

	// MaxLimit caps the page size. Larger values are silently clamped,
	// not rejected.
	MaxLimit = 100

	dateLayout = "2006-01-02"
)

// SearchOrdersQuery retrieves a customer's orders, optionally narrowed to a
// placement-date window, newest first, paginated.
//
// Date bounds are calendar days in UTC: the start bound is the beginning of
// its day, the end bound the final millisecond of its day (23:59:59.999).
//
// Example:
//
//	query, err := NewSearchOrdersQuery("cust-42", "2025-03-01", "2025-03-31", 20, 0)
//	if err != nil {
//	    return err
//	}
//
//	result, err := handler.Handle(ctx, query)
type SearchOrdersQuery struct { //nolint:recvcheck //using for validation
	customerID string
	startAt    *time.Time
	endAt      *time.Time
	limit      int
	offset     int

	guard kernel.ConstructorGuard
}

// NewSearchOrdersQuery creates a search query.
//
// Validation and normalization:
//   - customerID is mandatory
//   - startDate/endDate, when non-empty, must be "YYYY-MM-DD"; malformed
//     dates fail with a ValueIsInvalidError before any filtering occurs
//   - limit falls back to DefaultLimit when non-positive and is clamped
//     to MaxLimit when larger
//   - offset is clamped to zero when negative
func NewSearchOrdersQuery(customerID, startDate, endDate string, limit, offset int) (SearchOrdersQuery, error) {
	if customerID == "" {
		return SearchOrdersQuery{}, errs.NewValueIsRequiredError("customerId")
	}

	query := SearchOrdersQuery{
		customerID: customerID,
		limit:      clampLimit(limit),
		offset:     max(offset, 0),
		guard:      kernel.NewConstructorGuard(),
	}

	if startDate != "" {
		day, err := time.ParseInLocation(dateLayout, startDate, time.UTC)
		if err != nil {
			return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("startDate", err)
		}
		query.startAt = &day
	}

	if endDate != "" {
		day, err := time.ParseInLocation(dateLayout, endDate, time.UTC)
		if err != nil {
			return SearchOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("endDate", err)
		}
		endOfDay := day.Add(24*time.Hour - time.Millisecond)
		query.endAt = &endOfDay
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrSearchOrdersQueryIsNotConstructed if validation fails.
func (q SearchOrdersQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrdersQueryIsNotConstructed)
}

// CustomerID returns the mandatory customer filter.
func (q SearchOrdersQuery) CustomerID() string {
	return q.customerID
}

// StartAt returns the inclusive lower placement-time bound, nil when unset.
func (q SearchOrdersQuery) StartAt() *time.Time {
	return q.startAt
}

// EndAt returns the inclusive upper placement-time bound, nil when unset.
func (q SearchOrdersQuery) EndAt() *time.Time {
	return q.endAt
}

// Limit returns the normalized page size.
func (q SearchOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the normalized page offset.
func (q SearchOrdersQuery) Offset() int {
	return q.offset
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
