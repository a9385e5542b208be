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

// ReportIssueCommandHandler fails a delivery run, fails its order and
// returns the reserved stock to the shelf.
//
// All three writes share one transaction. Failing an already failed order
// stops at the transition check, so the stock cannot be returned twice.
type ReportIssueCommandHandler struct {
	uowFactory DeliveryProgressUoWFactory
	notifier   ports.Notifier
	publisher  ports.OrderEventPublisher
	metrics    *metrics.EngineMetrics
	logger     *slog.Logger
}

// NewReportIssueCommandHandler creates a handler for delivery failure.
// Notifier, publisher and metrics may be nil.
func NewReportIssueCommandHandler(
	uowFactory DeliveryProgressUoWFactory,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	engineMetrics *metrics.EngineMetrics,
	logger *slog.Logger,
) ReportIssueCommandHandler {
	return ReportIssueCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		metrics:    engineMetrics,
		logger:     logger,
	}
}

// Handle processes the issue report.
func (h *ReportIssueCommandHandler) Handle(ctx context.Context, cmd ReportIssueCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()
	run, err := deliveryRepo.Get(ctx, cmd.DeliveryID())
	if err != nil {
		return err
	}

	if !run.Driver().IsEqual(cmd.DriverID()) {
		return errs.NewObjectNotFoundError("delivery", cmd.DeliveryID().String())
	}

	if err = run.Fail(cmd.Reason(), time.Now()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, run.Order())
	if err != nil {
		return err
	}

	if err = aggregate.Fail(); err != nil {
		return err
	}

	if reservationID := aggregate.Reservation(); reservationID != nil {
		if err = uow.InventoryLedger().ReleaseAll(ctx, *reservationID); err != nil {
			return err
		}
	}

	if err = deliveryRepo.Update(ctx, run); err != nil {
		return err
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
	h.notify(ctx, aggregate, cmd.Reason())
	h.publish(ctx, aggregate)
	return nil
}

func (h *ReportIssueCommandHandler) notify(ctx context.Context, aggregate *order.Order, reason string) {
	if h.notifier == nil {
		return
	}
	err := h.notifier.NotifyOrderStatusChanged(ctx,
		aggregate.Owner(), aggregate.OrderNumber(), aggregate.Status().String(), reason)
	if err != nil && h.logger != nil {
		h.logger.Warn("delivery notification failed",
			"order", aggregate.ID().String(), "error", err)
	}
}

func (h *ReportIssueCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
