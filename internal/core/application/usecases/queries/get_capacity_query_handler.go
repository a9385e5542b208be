package queries

import (
	"context"

	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetCapacityQueryHandler aggregates open orders by delivery window and
// driver and rates each slot against the planner's per-slot ceiling.
type GetCapacityQueryHandler struct {
	db      *gorm.DB
	planner services.CapacityPlanner
}

// NewGetCapacityQueryHandler creates a handler for capacity queries.
func NewGetCapacityQueryHandler(db *gorm.DB, planner services.CapacityPlanner) GetCapacityQueryHandler {
	return GetCapacityQueryHandler{db: db, planner: planner}
}

// Handle executes the query. Slots are grouped in the database; only the
// percent rating goes through the domain planner, so the read never loads
// full order aggregates.
func (h GetCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetCapacityQuery,
) ([]GetCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	slots := make([]GetCapacityQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.delivery_window,
			COALESCE(dr.name, ''),
			COUNT(*)
		FROM orders o
		LEFT JOIN deliveries d ON d.order_id = o.id AND d.status IN ?
		LEFT JOIN drivers dr ON dr.id = d.driver_id
		WHERE o.status IN ?
		GROUP BY o.delivery_window, dr.name
		ORDER BY o.delivery_window, dr.name
	`, []int{
		int(delivery.Assigned),
		int(delivery.PickedUp),
		int(delivery.InTransit),
	}, []int{
		int(order.PendingPrescription),
		int(order.Ready),
		int(order.Assigned),
		int(order.PickedUp),
		int(order.InTransit),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var window string
		var driver string
		var count int

		if err = rows.Scan(&window, &driver, &count); err != nil {
			return nil, err
		}

		slots = append(slots, GetCapacityQueryResponse{
			Window:          window,
			Driver:          driver,
			OrderCount:      count,
			CapacityPercent: h.planner.RatePercent(count),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return slots, nil
}
