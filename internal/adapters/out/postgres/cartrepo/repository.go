package cartrepo

import (
	"context"

	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get retrieves the owner's cart. An owner without stored lines gets a
// fresh empty cart rather than an error.
func (r *GormCartRepository) Get(ctx context.Context, owner kernel.OwnerRef) (*cart.Cart, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartLineDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "owner_ref = ?", owner.String()).Error; err != nil {
		return nil, err
	}

	lines := make([]cart.Line, 0, len(dtos))
	for _, dto := range dtos {
		itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
		if err != nil {
			return nil, err
		}

		line, err := cart.NewLine(itemID, dto.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return cart.RestoreCart(owner, lines)
}

// Save replaces the owner's stored lines with the cart's current lines.
// Delete and insert run in one transaction; when the repository already
// sits on a unit of work transaction this becomes a savepoint.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ownerRef := aggregate.Owner().String()
	dtos := make([]CartLineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		dtos = append(dtos, CartLineDTO{
			OwnerRef: ownerRef,
			ItemID:   line.ItemID().Bytes(),
			Quantity: line.Quantity(),
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&CartLineDTO{}, "owner_ref = ?", ownerRef).Error; err != nil {
			return err
		}

		if len(dtos) == 0 {
			return nil
		}
		return tx.Create(&dtos).Error
	})
}

// Clear removes the owner's cart entirely. Clearing an absent cart is a
// no-op.
func (r *GormCartRepository) Clear(ctx context.Context, owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(&CartLineDTO{}, "owner_ref = ?", owner.String()).Error
}
