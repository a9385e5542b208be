package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery runs.
type DeliveryRepository interface {
	// Add persists a new delivery run.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists a status change on an existing run.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a run by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByOrder retrieves the active run for an order, if any.
	// Returns an ObjectNotFoundError when the order has no active run.
	GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetActiveByDriver retrieves a driver's active runs, oldest first.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error)

	// CountActiveByDriver counts a driver's active runs. The assignment
	// flow derives driver load from this count instead of a stored
	// counter, so the figure can never drift.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error)
}
