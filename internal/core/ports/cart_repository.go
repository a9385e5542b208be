package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/kernel"
)

// CartRepository defines the persistence contract for cart aggregates.
// One implementation is durable (customer carts in Postgres), another is
// ephemeral (guest carts in process memory); a router picks the backend by
// the owner's kind so callers never care which one serves them.
type CartRepository interface {
	// Get retrieves the owner's cart. Owners without a stored cart get a
	// fresh empty cart rather than an error.
	Get(ctx context.Context, owner kernel.OwnerRef) (*cart.Cart, error)

	// Save persists the cart's current lines, replacing what was stored.
	Save(ctx context.Context, aggregate *cart.Cart) error

	// Clear removes the owner's cart entirely. Clearing an absent cart is
	// a no-op, which keeps checkout and logout flows retryable.
	Clear(ctx context.Context, owner kernel.OwnerRef) error
}
