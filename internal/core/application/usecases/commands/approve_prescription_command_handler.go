package commands

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
)

// ApprovePrescriptionCommandHandler records a pharmacist's approval and
// moves the linked order, if any, from PendingPrescription to Ready.
//
// Approval of a standalone upload does not create an order: orders always
// carry purchasable lines, so the customer completes checkout themselves
// after the approval notification.
type ApprovePrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
	notifier   ports.Notifier
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewApprovePrescriptionCommandHandler creates a handler for approvals.
// Notifier and publisher may be nil.
func NewApprovePrescriptionCommandHandler(
	uowFactory PrescriptionUoWFactory,
	notifier ports.Notifier,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ApprovePrescriptionCommandHandler {
	return ApprovePrescriptionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the approval command.
func (h *ApprovePrescriptionCommandHandler) Handle(ctx context.Context, cmd ApprovePrescriptionCommand) error {
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

	prescriptionRepo := uow.PrescriptionRepository()
	aggregate, err := prescriptionRepo.Get(ctx, cmd.PrescriptionID())
	if err != nil {
		return err
	}

	if err = aggregate.Approve(cmd.PharmacistID(), time.Now()); err != nil {
		return err
	}

	var linkedOrder *order.Order
	if orderID := aggregate.Order(); orderID != nil {
		orderRepo := uow.OrderRepository()
		linkedOrder, err = orderRepo.Get(ctx, *orderID)
		if err != nil {
			return err
		}

		if err = linkedOrder.Approve(); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, linkedOrder); err != nil {
			return err
		}
	}

	if err = prescriptionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if linkedOrder != nil {
		h.notify(ctx, linkedOrder, "your prescription was approved")
		h.publish(ctx, linkedOrder)
	}
	return nil
}

func (h *ApprovePrescriptionCommandHandler) notify(ctx context.Context, aggregate *order.Order, detail string) {
	if h.notifier == nil {
		return
	}
	err := h.notifier.NotifyOrderStatusChanged(ctx,
		aggregate.Owner(), aggregate.OrderNumber(), aggregate.Status().String(), detail)
	if err != nil && h.logger != nil {
		h.logger.Warn("notification failed", "order", aggregate.ID().String(), "error", err)
	}
}

func (h *ApprovePrescriptionCommandHandler) publish(ctx context.Context, aggregate *order.Order) {
	if h.publisher == nil {
		return
	}
	if err := h.publisher.PublishOrderChanged(ctx, aggregate); err != nil && h.logger != nil {
		h.logger.Warn("order event publish failed",
			"order", aggregate.ID().String(), "error", err)
	}
}
