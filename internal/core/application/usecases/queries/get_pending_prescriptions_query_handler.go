package queries

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPendingPrescriptionsQueryHandler retrieves the pharmacist review queue
// from the database.
type GetPendingPrescriptionsQueryHandler struct {
	db *gorm.DB
}

// NewGetPendingPrescriptionsQueryHandler creates a handler for review queue queries.
func NewGetPendingPrescriptionsQueryHandler(db *gorm.DB) GetPendingPrescriptionsQueryHandler {
	return GetPendingPrescriptionsQueryHandler{db: db}
}

// Handle executes the query, returning pending uploads oldest first.
func (h GetPendingPrescriptionsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingPrescriptionsQuery,
) ([]GetPendingPrescriptionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	queue := make([]GetPendingPrescriptionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			file_ref,
			order_id,
			uploaded_at
		FROM prescriptions
		WHERE status = ?
		ORDER BY uploaded_at
	`, int(prescription.Pending)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetPendingPrescriptionsQueryResponse
		var id, customerID uuid.UUID
		var orderID *uuid.UUID

		if err = rows.Scan(&id, &customerID, &resp.FileRef, &orderID, &resp.UploadedAt); err != nil {
			return nil, err
		}

		prescriptionID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = prescriptionID

		customer, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CustomerID = customer

		if orderID != nil {
			oID, idErr := kernel.UUIDFromBytes((*orderID)[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.OrderID = &oID
		}

		queue = append(queue, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return queue, nil
}
