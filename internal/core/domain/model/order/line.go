package order

import (
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
)

// Line is one purchased position of an order. Unlike a cart line, an order
// line carries the unit price and item name captured at checkout time, so a
// later catalog price change never alters what the customer pays or sees on
// historical orders.
type Line struct {
	// itemID references the catalog item
	itemID kernel.UUID

	// itemName is the catalog name frozen at checkout
	itemName string

	// quantity is the purchased unit count (always positive)
	quantity int

	// unitPrice is the per-unit price frozen at checkout
	unitPrice kernel.Money
}

// NewLine creates an order line with price and name frozen at checkout.
//
// Parameters:
//   - itemID: catalog item identifier (must be a valid UUID)
//   - itemName: item display name at checkout time (must be non-empty)
//   - quantity: purchased unit count (must be positive)
//   - unitPrice: per-unit price at checkout time
//
// Returns the line or a validation error for any invalid parameter.
func NewLine(itemID kernel.UUID, itemName string, quantity int, unitPrice kernel.Money) (Line, error) {
	if err := itemID.Validate(); err != nil {
		return Line{}, err
	}
	if itemName == "" {
		return Line{}, errs.NewValueIsRequiredError("itemName")
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := unitPrice.Validate(); err != nil {
		return Line{}, err
	}

	return Line{
		itemID:    itemID,
		itemName:  itemName,
		quantity:  quantity,
		unitPrice: unitPrice,
	}, nil
}

// ItemID returns the catalog item identifier.
func (l Line) ItemID() kernel.UUID {
	return l.itemID
}

// ItemName returns the item name frozen at checkout.
func (l Line) ItemName() string {
	return l.itemName
}

// Quantity returns the purchased unit count.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the per-unit price frozen at checkout.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Total returns unitPrice multiplied by quantity.
func (l Line) Total() kernel.Money {
	return l.unitPrice.MultiplyQty(l.quantity)
}
