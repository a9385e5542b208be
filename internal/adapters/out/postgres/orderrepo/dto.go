// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Orders and their lines map to two tables; lines are
// written once at creation and never change afterwards.
package orderrepo

import (
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Indexed for the two hot lookups: an owner listing their orders and the
// dispatcher scanning by status.
type OrderDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber     string    `gorm:"uniqueIndex"`
	OwnerRef        string    `gorm:"index"`
	Status          int       `gorm:"index"`
	DeliveryAddress string
	DeliveryWindow  string
	ReservationID   *uuid.UUID `gorm:"type:uuid"`
	PrescriptionID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time
	Version         int
	Lines           []OrderLineDTO `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO represents one priced line of an order. The item name and
// unit price are frozen copies taken at checkout, so later catalog edits
// never rewrite order history.
type OrderLineDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemName       string
	Quantity       int
	UnitPriceCents int64
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var reservationID *uuid.UUID
	if id := aggregate.Reservation(); id != nil {
		raw := id.Bytes()
		reservationID = &raw
	}

	var prescriptionID *uuid.UUID
	if id := aggregate.Prescription(); id != nil {
		raw := id.Bytes()
		prescriptionID = &raw
	}

	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:        aggregate.ID().Bytes(),
			ItemID:         line.ItemID().Bytes(),
			ItemName:       line.ItemName(),
			Quantity:       line.Quantity(),
			UnitPriceCents: line.UnitPrice().Cents(),
		})
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		OwnerRef:        aggregate.Owner().String(),
		Status:          int(aggregate.Status()),
		DeliveryAddress: aggregate.DeliveryAddress(),
		DeliveryWindow:  aggregate.DeliveryWindow().String(),
		ReservationID:   reservationID,
		PrescriptionID:  prescriptionID,
		CreatedAt:       aggregate.CreatedAt(),
		Version:         aggregate.Version(),
		Lines:           lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	owner, err := kernel.OwnerRefFromString(dto.OwnerRef)
	if err != nil {
		return nil, err
	}

	window, err := kernel.DeliveryWindowFromString(dto.DeliveryWindow)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		itemID, lineErr := kernel.UUIDFromBytes(lineDTO.ItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		price, lineErr := kernel.NewMoney(lineDTO.UnitPriceCents)
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := order.NewLine(itemID, lineDTO.ItemName, lineDTO.Quantity, price)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var reservationID *kernel.UUID
	if dto.ReservationID != nil {
		rID, resErr := kernel.UUIDFromBytes((*dto.ReservationID)[:])
		if resErr != nil {
			return nil, resErr
		}
		reservationID = &rID
	}

	var prescriptionID *kernel.UUID
	if dto.PrescriptionID != nil {
		pID, rxErr := kernel.UUIDFromBytes((*dto.PrescriptionID)[:])
		if rxErr != nil {
			return nil, rxErr
		}
		prescriptionID = &pID
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		owner,
		lines,
		order.Status(dto.Status),
		dto.DeliveryAddress,
		window,
		reservationID,
		prescriptionID,
		dto.CreatedAt,
		dto.Version,
	)
}
