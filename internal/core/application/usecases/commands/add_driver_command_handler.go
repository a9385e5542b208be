package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/driver"
)

// AddDriverCommandHandler registers a new driver on the roster.
// New drivers start available and with no active deliveries.
type AddDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewAddDriverCommandHandler creates a handler for driver registration.
func NewAddDriverCommandHandler(uowFactory DriverUoWFactory) AddDriverCommandHandler {
	return AddDriverCommandHandler{uowFactory: uowFactory}
}

// Handle processes the registration command.
func (h *AddDriverCommandHandler) Handle(ctx context.Context, cmd AddDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := driver.NewDriver(cmd.DriverID(), cmd.Name(), cmd.Phone(), cmd.ServiceArea())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
