package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrReuploadPrescriptionCommandIsNotConstructed = errors.New(
		"ReuploadPrescriptionCommand must be created via NewReuploadPrescriptionCommand constructor",
	)
)

// ReuploadPrescriptionCommand represents a customer replacing a rejected
// prescription document, which reopens the pharmacist review.
type ReuploadPrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID kernel.UUID
	customerID     kernel.UUID
	fileRef        string

	guard guard.ConstructorGuard
}

// NewReuploadPrescriptionCommand creates a command to replace a rejected document.
func NewReuploadPrescriptionCommand(
	prescriptionID, customerID kernel.UUID,
	fileRef string,
) (ReuploadPrescriptionCommand, error) {
	cmd := ReuploadPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrescriptionID(prescriptionID),
		cmd.setCustomerID(customerID),
		cmd.setFileRef(fileRef),
	); err != nil {
		return ReuploadPrescriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReuploadPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrReuploadPrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the prescription being replaced.
func (c ReuploadPrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// CustomerID returns the uploading customer.
func (c ReuploadPrescriptionCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// FileRef returns the replacement document reference.
func (c ReuploadPrescriptionCommand) FileRef() string {
	return c.fileRef
}

func (c *ReuploadPrescriptionCommand) setPrescriptionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.prescriptionID = id
	return nil
}

func (c *ReuploadPrescriptionCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.customerID = id
	return nil
}

func (c *ReuploadPrescriptionCommand) setFileRef(fileRef string) error {
	if fileRef == "" {
		return errs.NewValueIsRequiredError("fileRef")
	}

	c.fileRef = fileRef
	return nil
}
