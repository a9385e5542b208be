package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using
	// optimistic concurrency: the write only applies when the stored
	// version still matches the version the aggregate was loaded with,
	// otherwise a VersionIsInvalidError is returned and the caller must
	// reload and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByOwner retrieves all orders belonging to an owner, newest first.
	GetByOwner(ctx context.Context, owner kernel.OwnerRef) ([]*order.Order, error)

	// GetAllOpen retrieves all orders in a non-terminal status.
	// Used for capacity planning and dispatcher dashboards.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// GetAllInReadyStatus retrieves orders waiting for a driver.
	GetAllInReadyStatus(ctx context.Context) ([]*order.Order, error)
}
