package commands

import (
	"context"

	"pharmacy/internal/core/domain/model/inventory"
)

// AddStockItemCommandHandler adds a new medicine to the catalog.
type AddStockItemCommandHandler struct {
	uowFactory CatalogUoWFactory
}

// NewAddStockItemCommandHandler creates a handler for catalog additions.
func NewAddStockItemCommandHandler(uowFactory CatalogUoWFactory) AddStockItemCommandHandler {
	return AddStockItemCommandHandler{uowFactory: uowFactory}
}

// Handle processes the catalog addition command.
func (h *AddStockItemCommandHandler) Handle(ctx context.Context, cmd AddStockItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	item, err := inventory.NewStockItem(
		cmd.ItemID(),
		cmd.Name(),
		cmd.UnitPrice(),
		cmd.QuantityOnHand(),
		cmd.UnitWeightGrams(),
		cmd.RequiresPrescription(),
	)
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

	if err = uow.StockItemRepository().Add(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
