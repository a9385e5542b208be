package ledger

import (
	"context"
	"errors"

	"pharmacy/internal/adapters/out/postgres/itemrepo"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryLedger implements InventoryLedger using GORM. It must run on
// the transaction of the surrounding unit of work so that a reservation and
// the order it backs commit or roll back together.
type GormInventoryLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormInventoryLedger creates a new GORM inventory ledger.
func NewGormInventoryLedger(db *gorm.DB, tracker aggregateTracker) *GormInventoryLedger {
	return &GormInventoryLedger{
		db:      db,
		tracker: tracker,
	}
}

// ReserveAll decrements on-hand quantities for every line and records a
// reservation for the order. Each decrement is a conditional UPDATE that
// only applies while enough stock remains, so two racing checkouts can
// never drive a quantity below zero: the database serializes the row
// updates and the loser sees the winner's decrement.
//
// The operation is all-or-nothing. The first failing line aborts with an
// InsufficientStockError carrying the quantity still available, and the
// surrounding transaction rollback undoes any decrements already applied.
func (l *GormInventoryLedger) ReserveAll(
	ctx context.Context, orderID kernel.UUID, lines []inventory.ReservationLine,
) (*inventory.Reservation, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("reservation lines")
	}

	for _, line := range lines {
		result := l.db.WithContext(ctx).Model(&itemrepo.StockItemDTO{}).
			Where("id = ? AND quantity_on_hand >= ?", line.ItemID().Bytes(), line.Quantity()).
			UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", line.Quantity()))
		if result.Error != nil {
			return nil, result.Error
		}

		if result.RowsAffected == 0 {
			available, err := l.quantityOnHand(ctx, line.ItemID())
			if err != nil {
				return nil, err
			}
			return nil, errs.NewInsufficientStockError(line.ItemID().String(), line.Quantity(), available)
		}
	}

	reservation, err := inventory.NewReservation(kernel.NewUUID(), lines)
	if err != nil {
		return nil, err
	}
	if err = reservation.AttachOrder(orderID); err != nil {
		return nil, err
	}

	dto := fromDomain(reservation)
	if err = l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, err
	}

	l.tracker.TrackAggregate(reservation.ID(), reservation)
	return reservation, nil
}

// ReleaseAll returns a reservation's quantities to the shelf. The released
// flag is flipped with a conditional UPDATE, so a second release finds
// nothing to flip and returns without touching stock. Cancel and fail
// flows can therefore be retried safely.
func (l *GormInventoryLedger) ReleaseAll(ctx context.Context, reservationID kernel.UUID) error {
	if err := reservationID.Validate(); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("id = ? AND released = ?", reservationID.Bytes(), false).
		Update("released", true)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var dto ReservationDTO
		err := l.db.WithContext(ctx).First(&dto, "id = ?", reservationID.Bytes()).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError("reservation", reservationID.String())
		}
		if err != nil {
			return err
		}
		// Already released; nothing more to do.
		return nil
	}

	var lines []ReservationLineDTO
	if err := l.db.WithContext(ctx).Find(&lines, "reservation_id = ?", reservationID.Bytes()).Error; err != nil {
		return err
	}

	for _, line := range lines {
		restock := l.db.WithContext(ctx).Model(&itemrepo.StockItemDTO{}).
			Where("id = ?", line.ItemID).
			UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand + ?", line.Quantity))
		if restock.Error != nil {
			return restock.Error
		}
		// Items removed from the catalog since the reservation are skipped;
		// failing here would leave the cancellation permanently stuck.
	}

	return nil
}

// Get retrieves a reservation with its lines by ID.
func (l *GormInventoryLedger) Get(ctx context.Context, reservationID kernel.UUID) (*inventory.Reservation, error) {
	if err := reservationID.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	err := l.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", reservationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", reservationID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (l *GormInventoryLedger) quantityOnHand(ctx context.Context, itemID kernel.UUID) (int, error) {
	var dto itemrepo.StockItemDTO
	err := l.db.WithContext(ctx).First(&dto, "id = ?", itemID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errs.NewObjectNotFoundError("stock item", itemID.String())
	}
	if err != nil {
		return 0, err
	}

	return dto.QuantityOnHand, nil
}
