package commands

import (
	"context"
	"log/slog"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/ports"
)

// RejectPrescriptionCommandHandler records a pharmacist's rejection.
//
// A rejection does not cancel the linked order: the order stays in
// PendingPrescription so the customer can upload a replacement document
// and keep the reserved stock. Abandoning the purchase is the customer's
// explicit cancellation.
type RejectPrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRejectPrescriptionCommandHandler creates a handler for rejections.
// Notifier may be nil.
func NewRejectPrescriptionCommandHandler(
	uowFactory PrescriptionUoWFactory,
	notifier ports.Notifier,
	logger *slog.Logger,
) RejectPrescriptionCommandHandler {
	return RejectPrescriptionCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the rejection command.
func (h *RejectPrescriptionCommandHandler) Handle(ctx context.Context, cmd RejectPrescriptionCommand) error {
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

	if err = aggregate.Reject(cmd.PharmacistID(), cmd.Reason(), time.Now()); err != nil {
		return err
	}

	// Resolved inside the transaction so the notification can name the
	// order; the rejection itself never touches the order row.
	orderNumber := ""
	if orderID := aggregate.Order(); orderID != nil {
		linkedOrder, err := uow.OrderRepository().Get(ctx, *orderID)
		if err != nil {
			return err
		}
		orderNumber = linkedOrder.OrderNumber()
	}

	if err = prescriptionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifyRejection(ctx, aggregate.CustomerID(), orderNumber, cmd.Reason())
	return nil
}

func (h *RejectPrescriptionCommandHandler) notifyRejection(
	ctx context.Context,
	customerID kernel.UUID,
	orderNumber, reason string,
) {
	if h.notifier == nil {
		return
	}

	owner, err := kernel.NewCustomerRef(customerID)
	if err != nil {
		return
	}

	err = h.notifier.NotifyOrderStatusChanged(ctx, owner, orderNumber,
		"PrescriptionRejected", reason)
	if err != nil && h.logger != nil {
		h.logger.Warn("notification failed", "customer", customerID.String(), "error", err)
	}
}
