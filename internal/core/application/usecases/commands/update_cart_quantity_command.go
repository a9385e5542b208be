package commands

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrUpdateCartQuantityCommandIsNotConstructed = errors.New(
		"UpdateCartQuantityCommand must be created via NewUpdateCartQuantityCommand constructor",
	)
)

// UpdateCartQuantityCommand represents a request to replace the quantity
// of a line already in the owner's cart. Zero or negative quantities are
// rejected; removing a line is a separate command.
type UpdateCartQuantityCommand struct { //nolint:recvcheck //using for validation
	owner    kernel.OwnerRef
	itemID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewUpdateCartQuantityCommand creates a command to change a cart line's quantity.
func NewUpdateCartQuantityCommand(
	owner kernel.OwnerRef,
	itemID kernel.UUID,
	quantity int,
) (UpdateCartQuantityCommand, error) {
	cmd := UpdateCartQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setItemID(itemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateCartQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartQuantityCommandIsNotConstructed)
}

// Owner returns the cart owner.
func (c UpdateCartQuantityCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// ItemID returns the catalog item whose line changes.
func (c UpdateCartQuantityCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the replacement unit count.
func (c UpdateCartQuantityCommand) Quantity() int {
	return c.quantity
}

func (c *UpdateCartQuantityCommand) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *UpdateCartQuantityCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *UpdateCartQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	c.quantity = quantity
	return nil
}
