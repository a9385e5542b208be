package queries

import (
	"context"
	"database/sql"

	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler joins runs with their orders and drivers
// to build the dispatcher board in a single read.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active run queries.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest assignment first so
// the longest-running delivery tops the board.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			o.order_number,
			dr.name,
			d.status,
			d.eta
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		JOIN drivers dr ON dr.id = d.driver_id
		WHERE d.status IN ?
		ORDER BY d.assigned_at
	`, []int{
		int(delivery.Assigned),
		int(delivery.PickedUp),
		int(delivery.InTransit),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id uuid.UUID
		var status int
		var eta sql.NullTime

		if err = rows.Scan(&id, &resp.OrderNumber, &resp.DriverName, &status, &eta); err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID
		resp.Status = delivery.Status(status).String()
		if eta.Valid {
			t := eta.Time
			resp.ETA = &t
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
