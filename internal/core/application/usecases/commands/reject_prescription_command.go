package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrRejectPrescriptionCommandIsNotConstructed = errors.New(
		"RejectPrescriptionCommand must be created via NewRejectPrescriptionCommand constructor",
	)
)

// RejectPrescriptionCommand represents a pharmacist turning a prescription
// down. The reason is mandatory and travels to the customer together with
// the option to upload a replacement document.
type RejectPrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID kernel.UUID
	pharmacistID   kernel.UUID
	reason         string

	guard guard.ConstructorGuard
}

// NewRejectPrescriptionCommand creates a command to reject a prescription.
func NewRejectPrescriptionCommand(
	prescriptionID, pharmacistID kernel.UUID,
	reason string,
) (RejectPrescriptionCommand, error) {
	cmd := RejectPrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrescriptionID(prescriptionID),
		cmd.setPharmacistID(pharmacistID),
		cmd.setReason(reason),
	); err != nil {
		return RejectPrescriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RejectPrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrRejectPrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the prescription being rejected.
func (c RejectPrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// PharmacistID returns the reviewing pharmacist.
func (c RejectPrescriptionCommand) PharmacistID() kernel.UUID {
	return c.pharmacistID
}

// Reason returns the customer-facing explanation for the rejection.
func (c RejectPrescriptionCommand) Reason() string {
	return c.reason
}

func (c *RejectPrescriptionCommand) setPrescriptionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.prescriptionID = id
	return nil
}

func (c *RejectPrescriptionCommand) setPharmacistID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pharmacistID = id
	return nil
}

func (c *RejectPrescriptionCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}
