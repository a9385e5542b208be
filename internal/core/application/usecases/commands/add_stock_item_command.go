package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrAddStockItemCommandIsNotConstructed = errors.New(
		"AddStockItemCommand must be created via NewAddStockItemCommand constructor",
	)
)

// AddStockItemCommand represents adding a new medicine to the catalog.
type AddStockItemCommand struct { //nolint:recvcheck //using for validation
	itemID               kernel.UUID
	name                 string
	unitPrice            kernel.Money
	quantityOnHand       int
	unitWeightGrams      int
	requiresPrescription bool

	guard guard.ConstructorGuard
}

// NewAddStockItemCommand creates a command to add a catalog item.
func NewAddStockItemCommand(
	itemID kernel.UUID,
	name string,
	unitPrice kernel.Money,
	quantityOnHand int,
	unitWeightGrams int,
	requiresPrescription bool,
) (AddStockItemCommand, error) {
	cmd := AddStockItemCommand{
		requiresPrescription: requiresPrescription,
		guard:                guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setName(name),
		cmd.setUnitPrice(unitPrice),
		cmd.setQuantityOnHand(quantityOnHand),
		cmd.setUnitWeightGrams(unitWeightGrams),
	); err != nil {
		return AddStockItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddStockItemCommand) Validate() error {
	return c.guard.Validate(ErrAddStockItemCommandIsNotConstructed)
}

// ItemID returns the identifier for the new item.
func (c AddStockItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Name returns the medicine name.
func (c AddStockItemCommand) Name() string {
	return c.name
}

// UnitPrice returns the price per unit.
func (c AddStockItemCommand) UnitPrice() kernel.Money {
	return c.unitPrice
}

// QuantityOnHand returns the opening stock level.
func (c AddStockItemCommand) QuantityOnHand() int {
	return c.quantityOnHand
}

// UnitWeightGrams returns the per-unit shipping weight.
func (c AddStockItemCommand) UnitWeightGrams() int {
	return c.unitWeightGrams
}

// RequiresPrescription reports whether the item needs pharmacist review.
func (c AddStockItemCommand) RequiresPrescription() bool {
	return c.requiresPrescription
}

func (c *AddStockItemCommand) setItemID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.itemID = id
	return nil
}

func (c *AddStockItemCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *AddStockItemCommand) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.unitPrice = price
	return nil
}

func (c *AddStockItemCommand) setQuantityOnHand(qty int) error {
	if qty < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantityOnHand", errs.ErrValueIsOutOfRange)
	}

	c.quantityOnHand = qty
	return nil
}

func (c *AddStockItemCommand) setUnitWeightGrams(weight int) error {
	if weight < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitWeightGrams", errs.ErrValueIsOutOfRange)
	}

	c.unitWeightGrams = weight
	return nil
}
