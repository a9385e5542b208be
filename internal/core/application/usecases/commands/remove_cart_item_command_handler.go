package commands

import (
	"context"

	"pharmacy/internal/core/ports"
)

// RemoveCartItemCommandHandler handles dropping lines from carts.
type RemoveCartItemCommandHandler struct {
	carts ports.CartRepository
}

// NewRemoveCartItemCommandHandler creates a handler for cart line removal.
func NewRemoveCartItemCommandHandler(carts ports.CartRepository) RemoveCartItemCommandHandler {
	return RemoveCartItemCommandHandler{carts: carts}
}

// Handle processes the removal command.
// Returns an ObjectNotFoundError when the item is not in the cart.
func (h *RemoveCartItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	cart, err := h.carts.Get(ctx, cmd.Owner())
	if err != nil {
		return err
	}

	if err = cart.RemoveItem(cmd.ItemID()); err != nil {
		return err
	}

	return h.carts.Save(ctx, cart)
}
