package commands

import (
	"errors"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
)

// CheckoutCommand represents a request to turn the owner's cart into an
// order with reserved stock.
//
// The order identifier is supplied by the caller, which makes a retried
// checkout detectable: the second attempt fails on the duplicate key
// instead of reserving stock twice.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	owner           kernel.OwnerRef
	deliveryAddress string
	deliveryWindow  kernel.DeliveryWindow

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to check out the owner's cart.
func NewCheckoutCommand(
	orderID kernel.UUID,
	owner kernel.OwnerRef,
	deliveryAddress string,
	deliveryWindow kernel.DeliveryWindow,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOwner(owner),
		cmd.setDeliveryAddress(deliveryAddress),
		cmd.setDeliveryWindow(deliveryWindow),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the caller-supplied identifier for the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Owner returns the purchasing customer or guest session.
func (c CheckoutCommand) Owner() kernel.OwnerRef {
	return c.owner
}

// DeliveryAddress returns the destination street address.
func (c CheckoutCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

// DeliveryWindow returns the requested delivery time slot.
func (c CheckoutCommand) DeliveryWindow() kernel.DeliveryWindow {
	return c.deliveryWindow
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setOwner(owner kernel.OwnerRef) error {
	if err := owner.Validate(); err != nil {
		return err
	}

	c.owner = owner
	return nil
}

func (c *CheckoutCommand) setDeliveryAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}

	c.deliveryAddress = address
	return nil
}

func (c *CheckoutCommand) setDeliveryWindow(window kernel.DeliveryWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}

	c.deliveryWindow = window
	return nil
}
