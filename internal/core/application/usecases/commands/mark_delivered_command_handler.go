package commands

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// MarkDeliveredCommandHandler closes a delivery run and marks its order
// delivered. Delivered is terminal for both aggregates; the reservation
// stays consumed because the stock physically left the pharmacy.
type MarkDeliveredCommandHandler struct {
	uowFactory DeliveryProgressUoWFactory
	notifier   ports.Notifier
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewMarkDeliveredCommandHandler creates a handler for delivery handover.
// Notifier and publisher may be nil.
func NewMarkDeliveredCommandHandler(
	uowFactory DeliveryProgressUoWFactory,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the handover command.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	if err = run.Complete(cmd.RecipientName(), cmd.ProofRef(), time.Now()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, run.Order())
	if err != nil {
		return err
	}

	if err = aggregate.Deliver(); err != nil {
		return err
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

	h.notify(ctx, aggregate)
	h.publish(ctx, aggregate)
	return nil
}

func (h *MarkDeliveredCommandHandler) notify(ctx context.Context, aggregate *order.Order) {
	if h.notifier == nil {
		return
	}
	err := h.notifier.NotifyOrderStatusChanged(ctx,
		aggregate.Owner(), aggregate.OrderNumber(), aggregate.Status().String(),
		"your order was delivered")
	if err != nil && h.logger != nil {
		h.logger.Warn("delivery notification failed",
			"order", aggregate.ID().String(), "error", err)
	}
}

func (h *MarkDeliveredCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
