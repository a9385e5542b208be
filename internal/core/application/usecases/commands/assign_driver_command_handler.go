package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
)

var (
	ErrDriverIsNotAvailable = errors.New("driver is not available")
	ErrDriverIsOverloaded   = errors.New("driver already carries the maximum number of active deliveries")
)

// AssignDriverCommandHandler hands a Ready order to a driver and opens a
// delivery run for it.
//
// The order transition, the delivery row and the load check share one
// transaction, so two dispatchers racing for the same order or the same
// driver's last slot cannot both succeed.
type AssignDriverCommandHandler struct {
	uowFactory    AssignUoWFactory
	maxDriverLoad int
	publisher     ports.OrderEventPublisher
	logger        *slog.Logger
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
// maxDriverLoad caps concurrent active deliveries per driver. Publisher may
// be nil.
func NewAssignDriverCommandHandler(
	uowFactory AssignUoWFactory,
	maxDriverLoad int,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory:    uowFactory,
		maxDriverLoad: maxDriverLoad,
		publisher:     publisher,
		logger:        logger,
	}
}

// Handle processes the assignment command.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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

	candidate, err := uow.DriverRepository().Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	if !candidate.IsAvailable() {
		return ErrDriverIsNotAvailable
	}

	deliveryRepo := uow.DeliveryRepository()
	activeCount, err := deliveryRepo.CountActiveByDriver(ctx, candidate.ID())
	if err != nil {
		return err
	}

	if activeCount >= h.maxDriverLoad {
		return ErrDriverIsOverloaded
	}

	if err = aggregate.Assign(); err != nil {
		return err
	}

	run, err := delivery.NewDelivery(cmd.DeliveryID(), aggregate.ID(), candidate.ID(), time.Now())
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, run); err != nil {
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

func (h *AssignDriverCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
