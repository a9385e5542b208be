package commands

import (
	"context"

	"pharmacy/internal/core/ports"
)

// UpdateCartQuantityCommandHandler handles quantity changes on cart lines.
type UpdateCartQuantityCommandHandler struct {
	carts ports.CartRepository
}

// NewUpdateCartQuantityCommandHandler creates a handler for quantity changes.
func NewUpdateCartQuantityCommandHandler(carts ports.CartRepository) UpdateCartQuantityCommandHandler {
	return UpdateCartQuantityCommandHandler{carts: carts}
}

// Handle processes the quantity change command.
// Returns an ObjectNotFoundError when the item is not in the cart.
func (h *UpdateCartQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartQuantityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cart, err := h.carts.Get(ctx, cmd.Owner())
	if err != nil {
		return err
	}

	if err = cart.UpdateQuantity(cmd.ItemID(), cmd.Quantity()); err != nil {
		return err
	}

	return h.carts.Save(ctx, cart)
}
