package commands

import (
	"context"
	"fmt"
	"time"

	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/domain/model/prescription"
	"pharmacy/internal/pkg/errs"
)

// UploadPrescriptionCommandHandler registers an uploaded prescription and,
// when the upload belongs to an order, links the two aggregates.
type UploadPrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
}

// NewUploadPrescriptionCommandHandler creates a handler for uploads.
func NewUploadPrescriptionCommandHandler(uowFactory PrescriptionUoWFactory) UploadPrescriptionCommandHandler {
	return UploadPrescriptionCommandHandler{uowFactory: uowFactory}
}

// Handle processes the upload command. A linked order must belong to the
// uploading customer and still be waiting on a prescription.
func (h *UploadPrescriptionCommandHandler) Handle(ctx context.Context, cmd UploadPrescriptionCommand) error {
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

	aggregate, err := prescription.NewPrescription(
		cmd.PrescriptionID(), cmd.CustomerID(), cmd.FileRef(), time.Now())
	if err != nil {
		return err
	}

	if cmd.OrderID() != nil {
		if err = h.linkOrder(ctx, uow, aggregate, cmd); err != nil {
			return err
		}
	}

	if err = uow.PrescriptionRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *UploadPrescriptionCommandHandler) linkOrder(
	ctx context.Context,
	uow PrescriptionUoW,
	aggregate *prescription.Prescription,
	cmd UploadPrescriptionCommand,
) error {
	orderRepo := uow.OrderRepository()
	linkedOrder, err := orderRepo.Get(ctx, *cmd.OrderID())
	if err != nil {
		return err
	}

	ownerID, isCustomer := linkedOrder.Owner().CustomerID()
	if !isCustomer || !ownerID.IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("order", cmd.OrderID().String())
	}

	if linkedOrder.Status() != order.PendingPrescription {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("%s is not waiting on a prescription", linkedOrder.Status()))
	}

	if err = aggregate.AttachOrder(linkedOrder.ID()); err != nil {
		return err
	}

	if err = linkedOrder.AttachPrescription(aggregate.ID()); err != nil {
		return err
	}

	return orderRepo.Update(ctx, linkedOrder)
}
