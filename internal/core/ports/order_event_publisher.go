package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/order"
)

// OrderEventPublisher emits integration events when an order changes
// status. Events are published after the owning transaction commits;
// a publish failure is logged, never propagated to the caller.
type OrderEventPublisher interface {
	// PublishOrderChanged emits an event describing the order's new state.
	PublishOrderChanged(ctx context.Context, aggregate *order.Order) error

	// Close flushes and releases the underlying connection.
	Close() error
}
