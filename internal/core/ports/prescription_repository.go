package ports

import (
	"context"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"
)

// PrescriptionRepository defines the persistence contract for prescription
// aggregates.
type PrescriptionRepository interface {
	// Add persists a newly uploaded prescription.
	Add(ctx context.Context, aggregate *prescription.Prescription) error

	// Update persists a review decision or replacement upload.
	Update(ctx context.Context, aggregate *prescription.Prescription) error

	// Get retrieves a prescription by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*prescription.Prescription, error)

	// GetAllPending retrieves the pharmacist review queue, oldest first.
	GetAllPending(ctx context.Context) ([]*prescription.Prescription, error)

	// GetByCustomer retrieves a customer's prescriptions, newest first.
	GetByCustomer(ctx context.Context, customerID kernel.UUID) ([]*prescription.Prescription, error)
}
