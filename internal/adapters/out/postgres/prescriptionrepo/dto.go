// Package prescriptionrepo provides data transfer objects and mapping
// functions for prescription persistence.
package prescriptionrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/prescription"

	"github.com/google/uuid"
)

// PrescriptionDTO represents the database structure for persisting
// prescription aggregates. FileRef is an opaque pointer into whatever
// stores the uploaded document; the row never holds the document itself.
type PrescriptionDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID `gorm:"type:uuid;index"`
	FileRef         string
	Status          int `gorm:"index"`
	RejectionReason string
	ReviewedBy      *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt      *time.Time
	OrderID         *uuid.UUID `gorm:"type:uuid;index"`
	UploadedAt      time.Time
}

// TableName specifies the database table name for prescriptions.
func (PrescriptionDTO) TableName() string {
	return "prescriptions"
}

// fromDomain converts a prescription aggregate to its database representation.
func fromDomain(aggregate *prescription.Prescription) PrescriptionDTO {
	var reviewedBy *uuid.UUID
	if id := aggregate.ReviewedBy(); id != nil {
		raw := id.Bytes()
		reviewedBy = &raw
	}

	var orderID *uuid.UUID
	if id := aggregate.Order(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return PrescriptionDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		FileRef:         aggregate.FileRef(),
		Status:          int(aggregate.Status()),
		RejectionReason: aggregate.RejectionReason(),
		ReviewedBy:      reviewedBy,
		ReviewedAt:      aggregate.ReviewedAt(),
		OrderID:         orderID,
		UploadedAt:      aggregate.UploadedAt(),
	}
}

// toDomain converts a database DTO to a prescription aggregate.
func toDomain(dto PrescriptionDTO) (*prescription.Prescription, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var reviewedBy *kernel.UUID
	if dto.ReviewedBy != nil {
		rID, revErr := kernel.UUIDFromBytes((*dto.ReviewedBy)[:])
		if revErr != nil {
			return nil, revErr
		}
		reviewedBy = &rID
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return prescription.RestorePrescription(
		id,
		customerID,
		dto.FileRef,
		prescription.Status(dto.Status),
		dto.RejectionReason,
		reviewedBy,
		dto.ReviewedAt,
		orderID,
		dto.UploadedAt,
	)
}
