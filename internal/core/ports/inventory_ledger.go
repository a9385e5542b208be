package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
)

// InventoryLedger is the single authority over stock quantity movement.
// Implementations must run inside the surrounding unit of work so that a
// reservation and the order it backs commit or roll back together.
type InventoryLedger interface {
	// ReserveAll atomically decrements on-hand quantities for every line
	// and records a reservation for the given order. The operation is
	// all-or-nothing: if any line has insufficient stock, no quantity
	// changes and an InsufficientStockError for the first failing line is
	// returned. Two concurrent reservations over the same item never
	// oversell; one of them observes the other's decrement and fails
	// cleanly.
	ReserveAll(ctx context.Context, orderID kernel.UUID, lines []inventory.ReservationLine) (*inventory.Reservation, error)

	// ReleaseAll returns a reservation's quantities to the shelf. The
	// operation is idempotent: releasing an already released reservation
	// changes nothing and returns no error, so cancel and fail flows can
	// be retried safely.
	ReleaseAll(ctx context.Context, reservationID kernel.UUID) error

	// Get retrieves a reservation by its unique identifier.
	Get(ctx context.Context, reservationID kernel.UUID) (*inventory.Reservation, error)
}
