package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrMarkDeliveredCommandIsNotConstructed = errors.New(
		"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
	)
)

// MarkDeliveredCommand represents a driver handing the order to the
// recipient at the door.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	deliveryID    kernel.UUID
	driverID      kernel.UUID
	recipientName string
	proofRef      string

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command to complete a delivery.
// The recipient name is mandatory; the proof reference (photo, signature)
// is optional and opaque.
func NewMarkDeliveredCommand(
	deliveryID, driverID kernel.UUID,
	recipientName, proofRef string,
) (MarkDeliveredCommand, error) {
	cmd := MarkDeliveredCommand{
		proofRef: proofRef,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
		cmd.setRecipientName(recipientName),
	); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// DeliveryID returns the delivery run being completed.
func (c MarkDeliveredCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the acting driver.
func (c MarkDeliveredCommand) DriverID() kernel.UUID {
	return c.driverID
}

// RecipientName returns who accepted the order.
func (c MarkDeliveredCommand) RecipientName() string {
	return c.recipientName
}

// ProofRef returns the opaque proof of handover reference.
func (c MarkDeliveredCommand) ProofRef() string {
	return c.proofRef
}

func (c *MarkDeliveredCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *MarkDeliveredCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *MarkDeliveredCommand) setRecipientName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}

	c.recipientName = name
	return nil
}
