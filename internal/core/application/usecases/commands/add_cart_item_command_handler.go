package commands

import (
	"context"

	"pharmacy/internal/core/ports"
)

// AddCartItemCommandHandler handles adding catalog items to carts.
//
// The handler checks that the item exists in the catalog but does not
// check stock: quantities change between cart edits and checkout,
// so availability is only decided when stock is actually reserved.
type AddCartItemCommandHandler struct {
	carts ports.CartRepository
	items ports.StockItemRepository
}

// NewAddCartItemCommandHandler creates a handler for cart additions.
// The cart repository is the owner-kind router, so the same handler serves
// customers and guests.
func NewAddCartItemCommandHandler(
	carts ports.CartRepository,
	items ports.StockItemRepository,
) AddCartItemCommandHandler {
	return AddCartItemCommandHandler{
		carts: carts,
		items: items,
	}
}

// Handle processes the cart addition command.
// Loads or creates the owner's cart, merges the quantity into an existing
// line if present and saves the result.
func (h *AddCartItemCommandHandler) Handle(ctx context.Context, cmd AddCartItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.items.Get(ctx, cmd.ItemID()); err != nil {
		return err
	}

	cart, err := h.carts.Get(ctx, cmd.Owner())
	if err != nil {
		return err
	}

	if err = cart.AddItem(cmd.ItemID(), cmd.Quantity()); err != nil {
		return err
	}

	return h.carts.Save(ctx, cart)
}
