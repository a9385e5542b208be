// Package itemrepo provides persistence for catalog items.
// Quantity movement bypasses this package: the ledger package owns every
// write to quantity_on_hand so the non-negativity invariant lives in one
// place.
package itemrepo

import (
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StockItemDTO represents the database structure for persisting catalog items.
type StockItemDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"index"`
	UnitPriceCents       int64
	QuantityOnHand       int
	UnitWeightGrams      int
	RequiresPrescription bool
}

// TableName specifies the database table name for catalog items.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// fromDomain converts a catalog item aggregate to its database representation.
func fromDomain(item *inventory.StockItem) StockItemDTO {
	return StockItemDTO{
		ID:                   item.ID().Bytes(),
		Name:                 item.Name(),
		UnitPriceCents:       item.UnitPrice().Cents(),
		QuantityOnHand:       item.QuantityOnHand(),
		UnitWeightGrams:      item.UnitWeightGrams(),
		RequiresPrescription: item.RequiresPrescription(),
	}
}

// toDomain converts a database DTO back to a catalog item aggregate.
func toDomain(dto StockItemDTO) (*inventory.StockItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.UnitPriceCents)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreStockItem(
		id, dto.Name, price, dto.QuantityOnHand, dto.UnitWeightGrams, dto.RequiresPrescription)
}
