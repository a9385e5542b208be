package commands

import (
	"context"
	"time"

	"pharmacy/internal/pkg/errs"
)

// ReuploadPrescriptionCommandHandler replaces a rejected prescription
// document and returns it to the pharmacist's review queue.
type ReuploadPrescriptionCommandHandler struct {
	uowFactory PrescriptionUoWFactory
}

// NewReuploadPrescriptionCommandHandler creates a handler for replacement uploads.
func NewReuploadPrescriptionCommandHandler(uowFactory PrescriptionUoWFactory) ReuploadPrescriptionCommandHandler {
	return ReuploadPrescriptionCommandHandler{uowFactory: uowFactory}
}

// Handle processes the replacement upload. Only the owning customer can
// replace the document, and only while the prescription is rejected.
func (h *ReuploadPrescriptionCommandHandler) Handle(ctx context.Context, cmd ReuploadPrescriptionCommand) error {
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

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewObjectNotFoundError("prescription", cmd.PrescriptionID().String())
	}

	if err = aggregate.Reupload(cmd.FileRef(), time.Now()); err != nil {
		return err
	}

	if err = prescriptionRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
