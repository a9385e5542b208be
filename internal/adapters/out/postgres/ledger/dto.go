// Package ledger owns every write to stock quantities. Reservations and
// their lines map to two tables; the conditional UPDATE that decrements
// quantity_on_hand is the single enforcement point for the rule that stock
// never goes negative, regardless of how many checkouts race.
package ledger

import (
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ReservationDTO represents the database structure for persisting
// reservations. A released reservation stays on record for auditing; the
// flag flip is what makes release idempotent.
type ReservationDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID  *uuid.UUID `gorm:"type:uuid;index"`
	Released bool
	Lines    []ReservationLineDTO `gorm:"foreignKey:ReservationID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for reservations.
func (ReservationDTO) TableName() string {
	return "reservations"
}

// ReservationLineDTO represents one reserved quantity of one item.
type ReservationLineDTO struct {
	ReservationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity      int
}

// TableName specifies the database table name for reservation lines.
func (ReservationLineDTO) TableName() string {
	return "reservation_lines"
}

// fromDomain converts a reservation aggregate to its database representation.
func fromDomain(reservation *inventory.Reservation) ReservationDTO {
	var orderID *uuid.UUID
	if id := reservation.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	lines := make([]ReservationLineDTO, 0, len(reservation.Lines()))
	for _, line := range reservation.Lines() {
		lines = append(lines, ReservationLineDTO{
			ReservationID: reservation.ID().Bytes(),
			ItemID:        line.ItemID().Bytes(),
			Quantity:      line.Quantity(),
		})
	}

	return ReservationDTO{
		ID:       reservation.ID().Bytes(),
		OrderID:  orderID,
		Released: reservation.Released(),
		Lines:    lines,
	}
}

// toDomain converts a database DTO back to a reservation aggregate.
func toDomain(dto ReservationDTO) (*inventory.Reservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	lines := make([]inventory.ReservationLine, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		itemID, lineErr := kernel.UUIDFromBytes(lineDTO.ItemID[:])
		if lineErr != nil {
			return nil, lineErr
		}

		line, lineErr := inventory.NewReservationLine(itemID, lineDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return inventory.RestoreReservation(id, orderID, lines, dto.Released)
}
