package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrApprovePrescriptionCommandIsNotConstructed = errors.New(
		"ApprovePrescriptionCommand must be created via NewApprovePrescriptionCommand constructor",
	)
)

// ApprovePrescriptionCommand represents a pharmacist clearing an uploaded
// prescription. When the prescription is linked to an order, the order
// moves from PendingPrescription to Ready in the same transaction.
type ApprovePrescriptionCommand struct { //nolint:recvcheck //using for validation
	prescriptionID kernel.UUID
	pharmacistID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewApprovePrescriptionCommand creates a command to approve a prescription.
func NewApprovePrescriptionCommand(prescriptionID, pharmacistID kernel.UUID) (ApprovePrescriptionCommand, error) {
	cmd := ApprovePrescriptionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrescriptionID(prescriptionID),
		cmd.setPharmacistID(pharmacistID),
	); err != nil {
		return ApprovePrescriptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApprovePrescriptionCommand) Validate() error {
	return c.guard.Validate(ErrApprovePrescriptionCommandIsNotConstructed)
}

// PrescriptionID returns the prescription being approved.
func (c ApprovePrescriptionCommand) PrescriptionID() kernel.UUID {
	return c.prescriptionID
}

// PharmacistID returns the reviewing pharmacist.
func (c ApprovePrescriptionCommand) PharmacistID() kernel.UUID {
	return c.pharmacistID
}

func (c *ApprovePrescriptionCommand) setPrescriptionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.prescriptionID = id
	return nil
}

func (c *ApprovePrescriptionCommand) setPharmacistID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.pharmacistID = id
	return nil
}
