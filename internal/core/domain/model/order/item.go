package order

import (
	"errors"
	"fmt"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created through
// the NewItem factory method. This ensures all line items are properly validated.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is an immutable line item value object attached to an order at creation.
//
// Item follows these invariants:
//   - Must reference a product by identifier
//   - Quantity must be strictly positive
//   - Unit price must be strictly positive
//
// A quantity or unit price of exactly zero is rejected as missing rather than
// as out of range: the request contract treats zero values as absent fields.
// Negative values are rejected as invalid. Both cases surface as validation
// failures to the caller.
type Item struct {
	// productID identifies the ordered product (opaque to this system)
	productID string

	// quantity is the number of units ordered (always > 0)
	quantity int

	// unitPrice is the price per unit (always > 0)
	unitPrice float64

	guard kernel.ConstructorGuard
}

// NewItem creates a validated line item.
//
// Validation order:
//  1. productID must be non-empty
//  2. quantity: zero is treated as missing, negative values are invalid
//  3. unitPrice: zero is treated as missing, negative values are invalid
//
// Returns the first validation failure encountered.
func NewItem(productID string, quantity int, unitPrice float64) (Item, error) {
	item := Item{
		guard: kernel.NewConstructorGuard(),
	}

	if err := item.setProductID(productID); err != nil {
		return Item{}, err
	}
	if err := item.setQuantity(quantity); err != nil {
		return Item{}, err
	}
	if err := item.setUnitPrice(unitPrice); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate ensures the Item was created through the constructor.
// Returns ErrItemIsNotConstructed for zero-value instances.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the identifier of the ordered product.
func (i Item) ProductID() string {
	return i.productID
}

// Quantity returns the number of units ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// UnitPrice returns the price per unit.
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Subtotal returns quantity multiplied by unit price, unrounded.
// Rounding happens once, over the order total.
func (i Item) Subtotal() float64 {
	return float64(i.quantity) * i.unitPrice
}

func (i *Item) setProductID(productID string) error {
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity == 0 {
		return errs.NewValueIsRequiredError("quantity")
	}
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice == 0 {
		return errs.NewValueIsRequiredError("unitPrice")
	}
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", fmt.Errorf("%g is not greater than or equal to 0", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
