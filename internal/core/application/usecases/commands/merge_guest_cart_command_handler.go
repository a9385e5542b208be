package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/ports"
)

// MergeGuestCartCommandHandler absorbs a guest cart into a customer cart
// when the guest logs in.
//
// The guest cart is destroyed after the merge, so once the clear has landed
// a retried login finds an empty guest cart and merges nothing. See Handle
// for the crash window between the two writes.
type MergeGuestCartCommandHandler struct {
	carts ports.CartRepository
}

// NewMergeGuestCartCommandHandler creates a handler for login-time merges.
func NewMergeGuestCartCommandHandler(carts ports.CartRepository) MergeGuestCartCommandHandler {
	return MergeGuestCartCommandHandler{carts: carts}
}

// Handle processes the merge command.
// Overlapping lines sum their quantities; lines unique to the guest cart
// are appended. An empty guest cart makes the whole operation a no-op.
func (h *MergeGuestCartCommandHandler) Handle(ctx context.Context, cmd MergeGuestCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	guestOwner, err := kernel.NewGuestRef(cmd.SessionToken())
	if err != nil {
		return err
	}

	customerOwner, err := kernel.NewCustomerRef(cmd.CustomerID())
	if err != nil {
		return err
	}

	guestCart, err := h.carts.Get(ctx, guestOwner)
	if err != nil {
		return err
	}

	if guestCart.IsEmpty() {
		return nil
	}

	customerCart, err := h.carts.Get(ctx, customerOwner)
	if err != nil {
		return err
	}

	if err = customerCart.MergeFrom(guestCart); err != nil {
		return err
	}

	// Save and Clear hit different backends (guest carts live in memory,
	// customer carts in Postgres), so there is no shared transaction. If the
	// process dies between the two calls, a retried login would merge the
	// guest lines a second time. Clearing first would instead lose the cart
	// on a crash; duplicated lines are the recoverable failure, so the save
	// goes first.
	if err = h.carts.Save(ctx, customerCart); err != nil {
		return err
	}

	return h.carts.Clear(ctx, guestOwner)
}
