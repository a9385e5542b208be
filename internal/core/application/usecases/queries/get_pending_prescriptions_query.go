package queries

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrGetPendingPrescriptionsQueryIsNotConstructed = errors.New(
		"GetPendingPrescriptionsQuery must be created via NewGetPendingPrescriptionsQuery constructor",
	)
)

// GetPendingPrescriptionsQuery retrieves the pharmacist review queue.
// Uploads are listed oldest first so the customer who has waited longest
// is reviewed next.
type GetPendingPrescriptionsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingPrescriptionsQuery creates a query to retrieve the review queue.
func NewGetPendingPrescriptionsQuery() GetPendingPrescriptionsQuery {
	return GetPendingPrescriptionsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingPrescriptionsQueryIsNotConstructed if validation fails.
func (q GetPendingPrescriptionsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingPrescriptionsQueryIsNotConstructed)
}

// GetPendingPrescriptionsQueryResponse represents one queued upload.
// OrderID is nil for standalone uploads that are not linked to an order.
type GetPendingPrescriptionsQueryResponse struct {
	ID         kernel.UUID
	CustomerID kernel.UUID
	FileRef    string
	OrderID    *kernel.UUID
	UploadedAt time.Time
}
