// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery run persistence.
package deliveryrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// runs. Indexed by driver and order because driver load counting and order
// lookup are the hot paths.
type DeliveryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID `gorm:"type:uuid;index"`
	DriverID      uuid.UUID `gorm:"type:uuid;index"`
	Status        int       `gorm:"index"`
	ETA           *time.Time
	Notes         string
	RecipientName string
	ProofRef      string
	FailureReason string
	AssignedAt    time.Time
	FinishedAt    *time.Time
}

// TableName specifies the database table name for delivery runs.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// fromDomain converts a delivery run aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:            aggregate.ID().Bytes(),
		OrderID:       aggregate.Order().Bytes(),
		DriverID:      aggregate.Driver().Bytes(),
		Status:        int(aggregate.Status()),
		ETA:           aggregate.ETA(),
		Notes:         aggregate.Notes(),
		RecipientName: aggregate.RecipientName(),
		ProofRef:      aggregate.ProofRef(),
		FailureReason: aggregate.FailureReason(),
		AssignedAt:    aggregate.AssignedAt(),
		FinishedAt:    aggregate.FinishedAt(),
	}
}

// toDomain converts a database DTO to a delivery run aggregate.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		driverID,
		delivery.Status(dto.Status),
		dto.ETA,
		dto.Notes,
		dto.RecipientName,
		dto.ProofRef,
		dto.FailureReason,
		dto.AssignedAt,
		dto.FinishedAt,
	)
}
