package commands

import (
	"context"
	"log/slog"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"
)

// StartDeliveryCommandHandler takes a delivery run and its order through
// pickup and into transit in a single transaction.
//
// Pickup and departure are distinct transitions on both aggregates, but
// drivers report them as one action from the counter, so the handler applies
// them back to back. A driver can only act on runs assigned to them; a
// mismatch reads as a missing delivery so drivers cannot probe each other's
// runs.
type StartDeliveryCommandHandler struct {
	uowFactory DeliveryProgressUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewStartDeliveryCommandHandler creates a handler for starting deliveries.
// Publisher may be nil.
func NewStartDeliveryCommandHandler(
	uowFactory DeliveryProgressUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the start command.
func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
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

	if err = run.PickUp(); err != nil {
		return err
	}
	if err = run.StartTransit(cmd.ETA(), cmd.Notes()); err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, run.Order())
	if err != nil {
		return err
	}

	if err = aggregate.PickUp(); err != nil {
		return err
	}
	if err = aggregate.StartTransit(); err != nil {
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

	h.publish(ctx, aggregate)
	return nil
}

func (h *StartDeliveryCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
