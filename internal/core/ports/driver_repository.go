package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/driver"
	"pharmacy/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for the driver roster.
type DriverRepository interface {
	// Add persists a new roster entry.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing roster entry.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver by their unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAll retrieves the full roster ordered by name.
	GetAll(ctx context.Context) ([]*driver.Driver, error)

	// GetAllAvailable retrieves drivers currently accepting assignments.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}
