package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
)

// StockItemRepository defines the persistence contract for catalog items.
// Quantity mutation is deliberately absent: reserving and releasing stock
// goes through the InventoryLedger so the non-negativity invariant is
// enforced in one place.
type StockItemRepository interface {
	// Add persists a new catalog item.
	Add(ctx context.Context, aggregate *inventory.StockItem) error

	// Update persists changes to an item's descriptive fields.
	Update(ctx context.Context, aggregate *inventory.StockItem) error

	// Get retrieves an item by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.StockItem, error)

	// GetBatch retrieves several items at once. Returns an
	// ObjectNotFoundError naming the first missing identifier.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*inventory.StockItem, error)

	// GetAll retrieves the full catalog ordered by name.
	GetAll(ctx context.Context) ([]*inventory.StockItem, error)
}
