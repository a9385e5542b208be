// Package memory provides the ephemeral cart store for guest sessions.
// Guest carts live only as long as the process: losing one on restart is
// acceptable, a guest simply starts browsing again. Customer carts never
// land here; the cart router sends those to Postgres.
package memory

import (
	"context"
	"sync"

	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/kernel"
)

// InMemoryCartRepository implements CartRepository over a process-local map
// keyed by the owner reference. Safe for concurrent use.
type InMemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string][]cart.Line
}

// NewInMemoryCartRepository creates an empty in-memory cart store.
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		carts: make(map[string][]cart.Line),
	}
}

// Get retrieves the owner's cart. An owner without a stored cart gets a
// fresh empty cart rather than an error.
func (r *InMemoryCartRepository) Get(_ context.Context, owner kernel.OwnerRef) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	lines := r.carts[owner.String()]
	r.mu.RUnlock()

	return cart.RestoreCart(owner, lines)
}

// Save stores the cart's current lines, replacing what was stored.
func (r *InMemoryCartRepository) Save(_ context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	lines := make([]cart.Line, len(aggregate.Lines()))
	copy(lines, aggregate.Lines())

	r.mu.Lock()
	r.carts[aggregate.Owner().String()] = lines
	r.mu.Unlock()

	return nil
}

// Clear removes the owner's cart entirely. Clearing an absent cart is a
// no-op.
func (r *InMemoryCartRepository) Clear(_ context.Context, owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.carts, owner.String())
	r.mu.Unlock()

	return nil
}
