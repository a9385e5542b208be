package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"pharmacy/internal/adapters/out/postgres/orderrepo"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_lines").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(owner kernel.OwnerRef, createdAt time.Time) *order.Order {
	price, err := kernel.NewMoney(1250)
	suite.Require().NoError(err)

	line, err := order.NewLine(kernel.NewUUID(), "Paracetamol 500mg", 2, price)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), owner, []order.Line{line},
		"12 Main St", kernel.StandardDeliveryWindow(), false, createdAt)
	suite.Require().NoError(err)

	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) customer() kernel.OwnerRef {
	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	suite.Require().NoError(err)
	return owner
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetRoundTrip() {
	ctx := context.Background()
	owner := suite.customer()
	aggregate := suite.newOrder(owner, time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	stored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.True(stored.ID().IsEqual(aggregate.ID()))
	suite.Equal(aggregate.OrderNumber(), stored.OrderNumber())
	suite.True(stored.Owner().IsEqual(owner))
	suite.Equal(order.Ready, stored.Status())
	suite.Equal("12 Main St", stored.DeliveryAddress())
	suite.Require().Len(stored.Lines(), 1)
	suite.Equal("Paracetamol 500mg", stored.Lines()[0].ItemName())
	suite.Equal(2, stored.Lines()[0].Quantity())
	suite.Equal(int64(2500), stored.Total().Cents())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdatePersistsStatusChange() {
	ctx := context.Background()
	aggregate := suite.newOrder(suite.customer(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(aggregate.Assign())
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	stored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, stored.Status())
	suite.Equal(aggregate.Version()+1, stored.Version())
}

// A second writer holding the same loaded version must be rejected so
// cancel and assign cannot both win on one order.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateRejectsStaleVersion() {
	ctx := context.Background()
	aggregate := suite.newOrder(suite.customer(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	first, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.Assign())
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.Cancel())
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	stored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Assigned, stored.Status(), "the stale write must not land")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByOwnerNewestFirst() {
	ctx := context.Background()
	owner := suite.customer()

	older := suite.newOrder(owner, time.Now().Add(-time.Hour))
	newer := suite.newOrder(owner, time.Now())
	other := suite.newOrder(suite.customer(), time.Now())

	suite.Require().NoError(suite.repository.Add(ctx, older))
	suite.Require().NoError(suite.repository.Add(ctx, newer))
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.GetByOwner(ctx, owner)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.True(orders[0].ID().IsEqual(newer.ID()))
	suite.True(orders[1].ID().IsEqual(older.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestStatusFinders() {
	ctx := context.Background()

	ready := suite.newOrder(suite.customer(), time.Now())
	assigned := suite.newOrder(suite.customer(), time.Now())
	cancelled := suite.newOrder(suite.customer(), time.Now())

	suite.Require().NoError(assigned.Assign())
	suite.Require().NoError(cancelled.Cancel())

	suite.Require().NoError(suite.repository.Add(ctx, ready))
	suite.Require().NoError(suite.repository.Add(ctx, assigned))
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	readyOrders, err := suite.repository.GetAllInReadyStatus(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(readyOrders, 1)
	suite.True(readyOrders[0].ID().IsEqual(ready.ID()))

	openOrders, err := suite.repository.GetAllOpen(ctx)
	suite.Require().NoError(err)
	suite.Len(openOrders, 2, "cancelled orders are not open")
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
