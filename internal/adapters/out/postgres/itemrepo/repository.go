package itemrepo

import (
	"context"
	"errors"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockItemRepository implements StockItemRepository using GORM.
type GormStockItemRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStockItemRepository creates a new GORM catalog repository.
func NewGormStockItemRepository(db *gorm.DB, tracker aggregateTracker) *GormStockItemRepository {
	return &GormStockItemRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new catalog item to the database.
func (r *GormStockItemRepository) Add(ctx context.Context, aggregate *inventory.StockItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves changes to an item's descriptive fields. The on-hand
// quantity is left untouched: only the ledger moves stock.
func (r *GormStockItemRepository) Update(ctx context.Context, aggregate *inventory.StockItem) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StockItemDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":                  dto.Name,
			"unit_price_cents":      dto.UnitPriceCents,
			"unit_weight_grams":     dto.UnitWeightGrams,
			"requires_prescription": dto.RequiresPrescription,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stock item", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a catalog item by ID.
func (r *GormStockItemRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.StockItem, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetBatch retrieves several catalog items at once, in request order.
// Returns an ObjectNotFoundError naming the first missing identifier.
func (r *GormStockItemRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*inventory.StockItem, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []StockItemDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]StockItemDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	items := make([]*inventory.StockItem, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("stock item", id.String())
		}

		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// GetAll retrieves the full catalog ordered by name.
func (r *GormStockItemRepository) GetAll(ctx context.Context) ([]*inventory.StockItem, error) {
	var dtos []StockItemDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*inventory.StockItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
