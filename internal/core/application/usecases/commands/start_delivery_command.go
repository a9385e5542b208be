package commands

import (
	"errors"
	"time"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrStartDeliveryCommandIsNotConstructed = errors.New(
		"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
	)
)

// StartDeliveryCommand represents a driver collecting the order at the
// counter and departing for the delivery address in one go.
type StartDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID
	eta        time.Time
	notes      string

	guard guard.ConstructorGuard
}

// NewStartDeliveryCommand creates a command to start a delivery run.
// Notes are optional remarks for the customer ("ring twice").
func NewStartDeliveryCommand(
	deliveryID, driverID kernel.UUID,
	eta time.Time,
	notes string,
) (StartDeliveryCommand, error) {
	cmd := StartDeliveryCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDeliveryID(deliveryID),
		cmd.setDriverID(driverID),
		cmd.setETA(eta),
	); err != nil {
		return StartDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery run being started.
func (c StartDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the acting driver.
func (c StartDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// ETA returns the driver's estimated arrival time.
func (c StartDeliveryCommand) ETA() time.Time {
	return c.eta
}

// Notes returns optional remarks for the customer.
func (c StartDeliveryCommand) Notes() string {
	return c.notes
}

func (c *StartDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *StartDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *StartDeliveryCommand) setETA(eta time.Time) error {
	if eta.IsZero() {
		return errs.NewValueIsRequiredError("eta")
	}

	c.eta = eta
	return nil
}
