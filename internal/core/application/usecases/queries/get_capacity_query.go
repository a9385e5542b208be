// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetCapacityQueryIsNotConstructed = errors.New(
		"GetCapacityQuery must be created via NewGetCapacityQuery constructor",
	)
)

// GetCapacityQuery retrieves the load of every delivery window that has
// open orders booked into it. Dispatchers read the figures to steer
// customers toward quiet windows; the numbers are advisory and never block
// order placement.
//
// Example:
//
//	query := NewGetCapacityQuery()
//	handler := NewGetCapacityQueryHandler(db, planner)
//
//	slots, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve capacity: %w", err)
//	}
type GetCapacityQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCapacityQuery creates a query to retrieve delivery window load.
// This is a parameterless query covering all windows with open orders.
func NewGetCapacityQuery() GetCapacityQuery {
	return GetCapacityQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCapacityQueryIsNotConstructed if validation fails.
func (q GetCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetCapacityQueryIsNotConstructed)
}

// GetCapacityQueryResponse represents the load of one delivery slot. A slot
// is a (window, driver) pair; orders without an active delivery run fall
// into the window's unassigned slot with an empty driver name.
type GetCapacityQueryResponse struct {
	Window          string
	Driver          string
	OrderCount      int
	CapacityPercent int
}
