package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrUploadPrescriptionCommandIsNotConstructed = errors.New(
		"UploadPrescriptionCommand must be created via NewUploadPrescriptionCommand constructor",
	)
)

// UploadPrescriptionCommand represents a customer uploading a prescription
// document. When the upload belongs to an order waiting on a prescription,
// the order is linked so the pharmacist's decision can move it forward.
type UploadPrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID kernel.UUID
	customerID     kernel.UUID
	fileRef        string
	orderID        *kernel.UUID

	guard guard.ConstructorGuard
}

// NewUploadPrescriptionCommand creates a command to register an upload.
// orderID may be nil for standalone uploads.
func NewUploadPrescriptionCommand(
	prescriptionID, customerID kernel.UUID,
	fileRef string,
	orderID *kernel.UUID,
) (UploadPrescriptionCommand, error) {
	cmd := UploadPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrescriptionID(prescriptionID),
		cmd.setCustomerID(customerID),
		cmd.setFileRef(fileRef),
		cmd.setOrderID(orderID),
	); err != nil {
		return UploadPrescriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UploadPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrUploadPrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the identifier for the new prescription.
func (c UploadPrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// CustomerID returns the uploading customer.
func (c UploadPrescriptionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// FileRef returns the stored document reference.
func (c UploadPrescriptionCommand) FileRef() string {
	return c.fileRef
}

// OrderID returns the order awaiting this prescription, nil for standalone uploads.
func (c UploadPrescriptionCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c *UploadPrescriptionCommand) setPrescriptionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.prescriptionID = id
	return nil
}

func (c *UploadPrescriptionCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *UploadPrescriptionCommand) setFileRef(fileRef string) error {
	if fileRef == "" {
		return errs.NewValueIsRequiredError("fileRef")
	}

	c.fileRef = fileRef
	return nil
}

func (c *UploadPrescriptionCommand) setOrderID(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
