package memory

import (
	"context"

	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// OwnerRoutedCartRepository dispatches cart operations to a backend by the
// owner's kind: customer carts to the durable repository, guest carts to
// the ephemeral one. Callers hold a single CartRepository and never care
// which backend serves them.
type OwnerRoutedCartRepository struct {
	customer ports.CartRepository
	guest    ports.CartRepository
}

// NewOwnerRoutedCartRepository creates a router over the two backends.
func NewOwnerRoutedCartRepository(customer, guest ports.CartRepository) *OwnerRoutedCartRepository {
	return &OwnerRoutedCartRepository{
		customer: customer,
		guest:    guest,
	}
}

func (r *OwnerRoutedCartRepository) backend(owner kernel.OwnerRef) (ports.CartRepository, error) {
	switch owner.Kind() {
	case kernel.OwnerKindCustomer:
		return r.customer, nil
	case kernel.OwnerKindGuest:
		return r.guest, nil
	default:
		return nil, errs.NewValueIsInvalidError("owner kind")
	}
}

// Get retrieves the owner's cart from the backend matching their kind.
func (r *OwnerRoutedCartRepository) Get(ctx context.Context, owner kernel.OwnerRef) (*cart.Cart, error) {
	backend, err := r.backend(owner)
	if err != nil {
		return nil, err
	}
	return backend.Get(ctx, owner)
}

// Save persists the cart to the backend matching its owner's kind.
func (r *OwnerRoutedCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	backend, err := r.backend(aggregate.Owner())
	if err != nil {
		return err
	}
	return backend.Save(ctx, aggregate)
}

// Clear removes the owner's cart from the backend matching their kind.
func (r *OwnerRoutedCartRepository) Clear(ctx context.Context, owner kernel.OwnerRef) error {
	backend, err := r.backend(owner)
	if err != nil {
		return err
	}
	return backend.Clear(ctx, owner)
}
