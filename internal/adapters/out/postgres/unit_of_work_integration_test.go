package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "pharmacy/internal/adapters/out/postgres"
	"pharmacy/internal/adapters/out/postgres/cartrepo"
	"pharmacy/internal/adapters/out/postgres/deliveryrepo"
	"pharmacy/internal/adapters/out/postgres/driverrepo"
	"pharmacy/internal/adapters/out/postgres/itemrepo"
	"pharmacy/internal/adapters/out/postgres/ledger"
	"pharmacy/internal/adapters/out/postgres/orderrepo"
	"pharmacy/internal/adapters/out/postgres/prescriptionrepo"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work
// against a real PostgreSQL database, including the consistency guarantees
// around stock reservation that the mocked handler tests cannot prove.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection
// for all tests and runs schema migrations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&itemrepo.StockItemDTO{},
		&ledger.ReservationDTO{},
		&ledger.ReservationLineDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&cartrepo.CartLineDTO{},
		&prescriptionrepo.PrescriptionDTO{},
		&deliveryrepo.DeliveryDTO{},
		&driverrepo.DriverDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE stock_items, reservations, reservation_lines, orders, order_lines," +
			" cart_lines, prescriptions, deliveries, drivers").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up the PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) seedItem(quantity int) *inventory.StockItem {
	price, err := kernel.NewMoney(499)
	suite.Require().NoError(err)

	item, err := inventory.NewStockItem(kernel.NewUUID(), "Ibuprofen 200mg", price, quantity, 50, false)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(context.Background()))
	suite.Require().NoError(uow.StockItemRepository().Add(context.Background(), item))
	suite.Require().NoError(uow.Commit(context.Background()))

	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) quantityOnHand(item *inventory.StockItem) int {
	var dto itemrepo.StockItemDTO
	err := suite.db.First(&dto, "id = ?", item.ID().Bytes()).Error
	suite.Require().NoError(err)
	return dto.QuantityOnHand
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactoryCreatesIsolatedInstances() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.InventoryLedger())
	suite.NotNil(uow2.DeliveryRepository())
	suite.NotNil(uow2.DriverRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "repeated begin must not nest")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsReservationAndStockChange() {
	ctx := context.Background()
	item := suite.seedItem(10)

	line, err := inventory.NewReservationLine(item.ID(), 4)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	reservation, err := uow.InventoryLedger().ReserveAll(ctx, kernel.NewUUID(), []inventory.ReservationLine{line})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Equal(10, suite.quantityOnHand(item), "rollback must restore the decrement")

	_, err = suite.factory.Create().InventoryLedger().Get(ctx, reservation.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReservationAndOrderCommitTogether() {
	ctx := context.Background()
	item := suite.seedItem(10)

	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	suite.Require().NoError(err)

	orderLine, err := order.NewLine(item.ID(), item.Name(), 4, item.UnitPrice())
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), owner, []order.Line{orderLine},
		"12 Main St", kernel.StandardDeliveryWindow(), false, time.Now())
	suite.Require().NoError(err)

	resLine, err := inventory.NewReservationLine(item.ID(), 4)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	reservation, err := uow.InventoryLedger().ReserveAll(ctx, aggregate.ID(), []inventory.ReservationLine{resLine})
	suite.Require().NoError(err)
	suite.Require().NoError(aggregate.AttachReservation(reservation.ID()))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Equal(6, suite.quantityOnHand(item))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Ready, stored.Status())
	suite.Require().NotNil(stored.Reservation())
	suite.True(stored.Reservation().IsEqual(reservation.ID()))
	suite.Require().Len(stored.Lines(), 1)
	suite.Equal("Ibuprofen 200mg", stored.Lines()[0].ItemName())
}

// Two checkouts race for the last units of the same item. Exactly one may
// win; stock must never go negative.
func (suite *UnitOfWorkIntegrationTestSuite) TestConcurrentReservationsNeverOversell() {
	ctx := context.Background()
	item := suite.seedItem(3)

	reserve := func() error {
		line, err := inventory.NewReservationLine(item.ID(), 2)
		if err != nil {
			return err
		}

		uow := suite.factory.Create()
		if err = uow.Begin(ctx); err != nil {
			return err
		}

		if _, err = uow.InventoryLedger().ReserveAll(ctx, kernel.NewUUID(), []inventory.ReservationLine{line}); err != nil {
			_ = uow.Rollback(ctx)
			return err
		}

		return uow.Commit(ctx)
	}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- reserve()
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, insufficient int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		default:
			suite.Require().ErrorIs(err, errs.ErrInsufficientStock)
			insufficient++
		}
	}

	suite.Equal(1, succeeded)
	suite.Equal(1, insufficient)
	suite.Equal(1, suite.quantityOnHand(item))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestInsufficientStockReportsAvailableUnits() {
	ctx := context.Background()
	item := suite.seedItem(1)

	line, err := inventory.NewReservationLine(item.ID(), 5)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	_, err = uow.InventoryLedger().ReserveAll(ctx, kernel.NewUUID(), []inventory.ReservationLine{line})
	suite.Require().ErrorIs(err, errs.ErrInsufficientStock)

	var stockErr *errs.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal(5, stockErr.Requested)
	suite.Equal(1, stockErr.Available)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReleaseRestoresStockExactlyOnce() {
	ctx := context.Background()
	item := suite.seedItem(5)

	line, err := inventory.NewReservationLine(item.ID(), 2)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	reservation, err := uow.InventoryLedger().ReserveAll(ctx, kernel.NewUUID(), []inventory.ReservationLine{line})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Commit(ctx))
	suite.Equal(3, suite.quantityOnHand(item))

	release := func() {
		u := suite.factory.Create()
		suite.Require().NoError(u.Begin(ctx))
		suite.Require().NoError(u.InventoryLedger().ReleaseAll(ctx, reservation.ID()))
		suite.Require().NoError(u.Commit(ctx))
	}

	release()
	suite.Equal(5, suite.quantityOnHand(item))

	// A retried release finds the flag already flipped and changes nothing.
	release()
	suite.Equal(5, suite.quantityOnHand(item))

	stored, err := suite.factory.Create().InventoryLedger().Get(ctx, reservation.ID())
	suite.Require().NoError(err)
	suite.True(stored.Released())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestReleaseUnknownReservation() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	err := uow.InventoryLedger().ReleaseAll(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
