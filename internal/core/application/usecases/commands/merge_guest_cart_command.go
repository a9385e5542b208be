package commands

import (
	"errors"
	"fmt"

	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/pkg/errs"
	"pharmacy/internal/pkg/guard"
)

var (
	ErrMergeGuestCartCommandIsNotConstructed = errors.New(
		"MergeGuestCartCommand must be created via NewMergeGuestCartCommand constructor",
	)
)

// MergeGuestCartCommand represents the login-time transfer of a guest
// session's cart into the authenticating customer's durable cart.
type MergeGuestCartCommand struct { //nolint:recvcheck //using for validation
	customerID   kernel.UUID
	sessionToken string

	guard guard.ConstructorGuard
}

// NewMergeGuestCartCommand creates a command to merge a guest cart at login.
func NewMergeGuestCartCommand(customerID kernel.UUID, sessionToken string) (MergeGuestCartCommand, error) {
	cmd := MergeGuestCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setSessionToken(sessionToken),
	); err != nil {
		return MergeGuestCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MergeGuestCartCommand) Validate() error {
	return c.guard.Validate(ErrMergeGuestCartCommandIsNotConstructed)
}

// CustomerID returns the authenticating customer.
func (c MergeGuestCartCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// SessionToken returns the guest session whose cart is absorbed.
func (c MergeGuestCartCommand) SessionToken() string {
	return c.sessionToken
}

func (c *MergeGuestCartCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *MergeGuestCartCommand) setSessionToken(sessionToken string) error {
	if sessionToken == "" {
		return errs.NewValueIsRequiredError("sessionToken")
	}
	if len(sessionToken) > 128 {
		return errs.NewValueIsInvalidErrorWithCause("sessionToken",
			fmt.Errorf("token of %d characters exceeds the limit", len(sessionToken)))
	}

	c.sessionToken = sessionToken
	return nil
}
