package commands

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
)

// AddCartItemCommand represents a request to put quantity units of a
// catalog item into the owner's cart. Adding an item that is already in
// the cart increases its quantity instead of creating a second line.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	owner    kernel.OwnerRef
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewAddCartItemCommand creates a command to add an item to a cart.
// Validates that the owner and item are valid and quantity is positive.
func NewAddCartItemCommand(owner kernel.OwnerRef, itemID kernel.UUID, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AddCartItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

// Owner returns the cart owner.
func (c AddCartItemCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// ItemID returns the catalog item to add.
func (c AddCartItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the number of units to add.
func (c AddCartItemCommand) Quantity() int {
	return c.quantity
}

func (c *AddCartItemCommand) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *AddCartItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *AddCartItemCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}
