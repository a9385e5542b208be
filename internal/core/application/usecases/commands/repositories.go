// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"pharmacy/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// StockItemRepoFactory provides access to the catalog repository within a transaction.
	StockItemRepoFactory interface {
		StockItemRepository() ports.StockItemRepository
	}

	// LedgerFactory provides access to the inventory ledger within a transaction.
	LedgerFactory interface {
		InventoryLedger() ports.InventoryLedger
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PrescriptionRepoFactory provides access to the prescription repository within a transaction.
	PrescriptionRepoFactory interface {
		PrescriptionRepository() ports.PrescriptionRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// DriverRepoFactory provides access to the driver roster within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// CheckoutUoW spans the aggregates touched by checkout: the catalog is
	// read for prices, the ledger reserves stock and the order is written,
	// all in one transaction so a failed reservation leaves no order behind.
	CheckoutUoW interface {
		TxManager
		StockItemRepoFactory
		LedgerFactory
		OrderRepoFactory
	}

	// CheckoutUoWFactory creates checkout unit of work instances.
	CheckoutUoWFactory interface {
		Create() CheckoutUoW
	}

	// OrderUoW manages transactions for order lifecycle operations that may
	// return reserved stock (cancel, fail). Cancelling an assigned order
	// also closes its delivery run, so the run repository rides along.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		LedgerFactory
		DeliveryRepoFactory
	}

	// OrderUoWFactory creates order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PrescriptionUoW spans prescription review and the linked order.
	PrescriptionUoW interface {
		TxManager
		PrescriptionRepoFactory
		OrderRepoFactory
	}

	// PrescriptionUoWFactory creates prescription unit of work instances.
	PrescriptionUoWFactory interface {
		Create() PrescriptionUoW
	}

	// AssignUoW spans the aggregates touched by driver assignment.
	AssignUoW interface {
		TxManager
		OrderRepoFactory
		DriverRepoFactory
		DeliveryRepoFactory
	}

	// AssignUoWFactory creates assignment unit of work instances.
	AssignUoWFactory interface {
		Create() AssignUoW
	}

	// DeliveryProgressUoW spans a delivery run, its order and the ledger
	// (failed runs return reserved stock in the same transaction).
	DeliveryProgressUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		LedgerFactory
	}

	// DeliveryProgressUoWFactory creates delivery progress unit of work instances.
	DeliveryProgressUoWFactory interface {
		Create() DeliveryProgressUoW
	}

	// DriverUoW manages transactions for roster-only operations.
	DriverUoW interface {
		TxManager
		DriverRepoFactory
	}

	// DriverUoWFactory creates roster unit of work instances.
	DriverUoWFactory interface {
		Create() DriverUoW
	}

	// CatalogUoW manages transactions for catalog-only operations.
	CatalogUoW interface {
		TxManager
		StockItemRepoFactory
	}

	// CatalogUoWFactory creates catalog unit of work instances.
	CatalogUoWFactory interface {
		Create() CatalogUoW
	}
)
