package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrAddDriverCommandIsNotConstructed = errors.New(
		"AddDriverCommand must be created via NewAddDriverCommand constructor",
	)
)

// AddDriverCommand represents registering a new driver on the roster.
type AddDriverCommand struct { //nolint:recvcheck //using for validation
	driverID    kernel.UUID
	name        string
	phone       string
	serviceArea string

	guard guard.ConstructorGuard
}

// NewAddDriverCommand creates a command to register a driver.
// Phone and service area are optional roster details.
func NewAddDriverCommand(driverID kernel.UUID, name, phone, serviceArea string) (AddDriverCommand, error) {
	cmd := AddDriverCommand{
		phone:       phone,
		serviceArea: serviceArea,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setName(name),
	); err != nil {
		return AddDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddDriverCommand) Validate() error {
	return c.guard.Validate(ErrAddDriverCommandIsNotConstructed)
}

// DriverID returns the identifier for the new driver.
func (c AddDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver's display name.
func (c AddDriverCommand) Name() string {
	return c.name
}

// Phone returns the driver's contact phone.
func (c AddDriverCommand) Phone() string {
	return c.phone
}

// ServiceArea returns the area the driver covers.
func (c AddDriverCommand) ServiceArea() string {
	return c.serviceArea
}

func (c *AddDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *AddDriverCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
