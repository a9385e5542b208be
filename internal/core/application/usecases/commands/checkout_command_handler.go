package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/metrics"
)

// ErrCartIsEmpty is returned when checking out an owner whose cart has no
// lines.
var ErrCartIsEmpty = errors.New("cart is empty")

// CheckoutCommandHandler turns a cart into an order with reserved stock.
//
// The whole conversion runs in one transaction: prices are read and frozen,
// the ledger reserves every line or none, and the order row is written.
// If any line is short on stock the transaction rolls back and the shelf
// is untouched.
//
// The cart is cleared only after the transaction commits. A crash between
// commit and clear leaves a stale cart behind, which is harmless compared
// to clearing a cart for an order that never materialized.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	carts      ports.CartRepository
	publisher  ports.OrderEventPublisher
	metrics    *metrics.EngineMetrics
	logger     *slog.Logger
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// Publisher and metrics may be nil; checkout then skips event emission and
// instrumentation.
func NewCheckoutCommandHandler(
	uowFactory CheckoutUoWFactory,
	carts ports.CartRepository,
	publisher ports.OrderEventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		publisher:  publisher,
		metrics:    engineMetrics,
		logger:     logger,
	}
}

// Handle processes the checkout command.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	err := h.checkout(ctx, cmd)
	h.recordResult(err)
	return err
}

func (h *CheckoutCommandHandler) checkout(ctx context.Context, cmd CheckoutCommand) error {
	ownerCart, err := h.carts.Get(ctx, cmd.Owner())
	if err != nil {
		return err
	}

	if ownerCart.IsEmpty() {
		return ErrCartIsEmpty
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, reservationLines, needsPrescription, err := h.freezeLines(ctx, uow, ownerCart)
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Owner(),
		lines,
		cmd.DeliveryAddress(),
		cmd.DeliveryWindow(),
		needsPrescription,
		time.Now(),
	)
	if err != nil {
		return err
	}

	reservation, err := uow.InventoryLedger().ReserveAll(ctx, newOrder.ID(), reservationLines)
	if err != nil {
		return err
	}

	if err = newOrder.AttachReservation(reservation.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.carts.Clear(ctx, cmd.Owner()); err != nil && h.logger != nil {
		h.logger.Warn("cart clear after checkout failed",
			"owner", cmd.Owner().String(), "error", err)
	}

	h.publish(ctx, newOrder)
	return nil
}

// freezeLines reads the catalog inside the transaction and converts cart
// lines into order lines with frozen names and prices, plus the matching
// reservation lines for the ledger.
func (h *CheckoutCommandHandler) freezeLines(
	ctx context.Context,
	uow CheckoutUoW,
	ownerCart *cart.Cart,
) ([]order.Line, []inventory.ReservationLine, bool, error) {
	cartLines := ownerCart.Lines()
	itemIDs := make([]kernel.UUID, 0, len(cartLines))
	for _, line := range cartLines {
		itemIDs = append(itemIDs, line.ItemID())
	}

	items, err := uow.StockItemRepository().GetBatch(ctx, itemIDs)
	if err != nil {
		return nil, nil, false, err
	}

	byID := make(map[kernel.UUID]*inventory.StockItem, len(items))
	for _, item := range items {
		byID[item.ID()] = item
	}

	lines := make([]order.Line, 0, len(cartLines))
	reservationLines := make([]inventory.ReservationLine, 0, len(cartLines))
	needsPrescription := false

	for _, cartLine := range cartLines {
		item, ok := byID[cartLine.ItemID()]
		if !ok {
			return nil, nil, false, errs.NewObjectNotFoundError("stock item", cartLine.ItemID().String())
		}

		line, err := order.NewLine(item.ID(), item.Name(), cartLine.Quantity(), item.UnitPrice())
		if err != nil {
			return nil, nil, false, err
		}
		lines = append(lines, line)

		reservationLine, err := inventory.NewReservationLine(item.ID(), cartLine.Quantity())
		if err != nil {
			return nil, nil, false, err
		}
		reservationLines = append(reservationLines, reservationLine)

		if item.RequiresPrescription() {
			needsPrescription = true
		}
	}

	return lines, reservationLines, needsPrescription, nil
}

func (h *CheckoutCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}

func (h *CheckoutCommandHandler) recordResult(err error) {
	if h.metrics == nil {
		return
	}

	switch {
	case err == nil:
		h.metrics.Checkouts.WithLabelValues("ok").Inc()
	case errors.Is(err, errs.ErrInsufficientStock):
		h.metrics.Checkouts.WithLabelValues("insufficient_stock").Inc()
	default:
		h.metrics.Checkouts.WithLabelValues("error").Inc()
	}
}
