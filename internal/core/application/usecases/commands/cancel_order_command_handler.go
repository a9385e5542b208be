package commands

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/metrics"
)

// CancelOrderCommandHandler withdraws an order before driver pickup and
// returns its reserved stock to the shelf. Cancelling an order that is
// already assigned closes the driver's run as well.
//
// Cancellation, release and run closure share one transaction. The release
// is idempotent at the ledger level, so a retried cancellation of an
// already cancelled order reports an invalid transition without touching
// stock.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	metrics    *metrics.EngineMetrics
	logger     *slog.Logger
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
// Publisher and metrics may be nil.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		metrics:    engineMetrics,
		logger:     logger,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.Owner().IsEqual(cmd.Requester()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	wasAssigned := aggregate.Status() == order.Assigned

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if wasAssigned {
		deliveryRepo := uow.DeliveryRepository()
		run, err := deliveryRepo.GetActiveByOrder(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if err = run.Fail("order cancelled by customer", time.Now()); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, run); err != nil {
			return err
		}
	}

	if reservationID := aggregate.Reservation(); reservationID != nil {
		if err = uow.InventoryLedger().ReleaseAll(ctx, *reservationID); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.metrics != nil && aggregate.Reservation() != nil {
		h.metrics.StockReleases.Inc()
	}
	h.publish(ctx, aggregate)
	return nil
}

func (h *CancelOrderCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
