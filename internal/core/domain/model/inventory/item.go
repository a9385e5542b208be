package inventory

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

// Domain errors for stock item operations.
var (
	// ErrItemNameIsRequired is returned when creating an item without a name.
	ErrItemNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStockItemIsNotConstructed is returned when using an improperly initialized StockItem.
	ErrStockItemIsNotConstructed = errors.New("StockItem must be created via NewStockItem constructor")
)

// StockItem represents a medicine in the catalog together with its current
// stock count. It is the unit the inventory ledger reserves against.
//
// Invariants:
//   - quantityOnHand >= 0 at all times
//   - unitPrice is non-negative
//   - only the inventory ledger mutates quantityOnHand; this aggregate
//     exposes no mutators for it
//
// Prescription-only items gate orders through pharmacist approval before
// delivery can proceed.
type StockItem struct {
	// id uniquely identifies the item
	id kernel.UUID
	// name is the human-readable medicine name
	name string
	// unitPrice is the current catalog price, frozen into order lines at checkout
	unitPrice kernel.Money
	// quantityOnHand is the units currently in stock
	quantityOnHand int
	// unitWeightGrams is the shipping weight of one unit
	unitWeightGrams int
	// requiresPrescription marks items that need pharmacist approval
	requiresPrescription bool
	// guard ensures the item was properly constructed
	guard guard.ConstructorGuard
}

// NewStockItem creates a catalog item with validation. Name must be
// non-empty, quantity and weight non-negative, and the price a constructed
// Money value.
func NewStockItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantityOnHand int,
	unitWeightGrams int,
	requiresPrescription bool,
) (*StockItem, error) {
	item := &StockItem{
		requiresPrescription: requiresPrescription,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setName(name),
		item.setUnitPrice(unitPrice),
		item.setQuantityOnHand(quantityOnHand),
		item.setUnitWeightGrams(unitWeightGrams),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreStockItem reconstructs a StockItem from persistent storage.
func RestoreStockItem(
	id kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantityOnHand int,
	unitWeightGrams int,
	requiresPrescription bool,
) (*StockItem, error) {
	return NewStockItem(id, name, unitPrice, quantityOnHand, unitWeightGrams, requiresPrescription)
}

// Validate ensures the item was constructed via NewStockItem.
func (i *StockItem) Validate() error {
	if i == nil || i.guard.Validate(ErrStockItemIsNotConstructed) != nil {
		return ErrStockItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by identifier.
func (i *StockItem) IsEqual(other *StockItem) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *StockItem) ID() kernel.UUID {
	return i.id
}

// Name returns the medicine name.
func (i *StockItem) Name() string {
	return i.name
}

// UnitPrice returns the current catalog price.
func (i *StockItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// QuantityOnHand returns the units currently in stock.
func (i *StockItem) QuantityOnHand() int {
	return i.quantityOnHand
}

// UnitWeightGrams returns the shipping weight of one unit.
func (i *StockItem) UnitWeightGrams() int {
	return i.unitWeightGrams
}

// RequiresPrescription reports whether orders containing this item start in
// the PendingPrescription state.
func (i *StockItem) RequiresPrescription() bool {
	return i.requiresPrescription
}

func (i *StockItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *StockItem) setName(name string) error {
	if name == "" {
		return ErrItemNameIsRequired
	}
	i.name = name
	return nil
}

func (i *StockItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	i.unitPrice = price
	return nil
}

func (i *StockItem) setQuantityOnHand(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityOnHand",
			fmt.Errorf("%d is negative", qty))
	}
	i.quantityOnHand = qty
	return nil
}

func (i *StockItem) setUnitWeightGrams(weight int) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitWeightGrams",
			fmt.Errorf("%d is negative", weight))
	}
	i.unitWeightGrams = weight
	return nil
}
