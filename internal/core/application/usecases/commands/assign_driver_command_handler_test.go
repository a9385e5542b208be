package commands_test

import (
	"context"
	"testing"
	"time"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/domain/model/delivery"
	"pharmacy/internal/core/domain/model/driver"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAssignOrderRepository struct{ mock.Mock }

func (m *MockAssignOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) GetByOwner(ctx context.Context, owner kernel.OwnerRef) ([]*order.Order, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockAssignOrderRepository) GetAllInReadyStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockAssignDriverRepository struct{ mock.Mock }

func (m *MockAssignDriverRepository) Add(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignDriverRepository) Update(ctx context.Context, aggregate *driver.Driver) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockAssignDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockAssignDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockAssignDeliveryRepository struct{ mock.Mock }

func (m *MockAssignDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockAssignDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockAssignDeliveryRepository) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockAssignDeliveryRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockAssignDeliveryRepository) CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID)
	return args.Int(0), args.Error(1)
}

type MockAssignUoW struct{ mock.Mock }

func (m *MockAssignUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAssignUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAssignUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockAssignUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockAssignUoWFactory struct{ mock.Mock }

func (m *MockAssignUoWFactory) Create() commands.AssignUoW {
	args := m.Called()
	return args.Get(0).(commands.AssignUoW)
}

func readyOrder(t *testing.T) *order.Order {
	t.Helper()

	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	require.NoError(t, err)
	price, err := kernel.NewMoney(899)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), "Cetirizine 10mg", 1, price)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), owner, []order.Line{line},
		"Main Street 1", kernel.StandardDeliveryWindow(), false, time.Now(),
	)
	require.NoError(t, err)

	return aggregate
}

func TestAssignDriverCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	testOrder := readyOrder(t)
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Jane Smith", "+31600000001", "Centrum")
	require.NoError(t, err)

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), deliveryID)
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	driverRepo := new(MockAssignDriverRepository)
	deliveryRepo := new(MockAssignDeliveryRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("CountActiveByDriver", ctx, testDriver.ID()).Return(1, nil).Once(),
		deliveryRepo.On("Add", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, 3, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	orderRepo.AssertExpectations(t)
	driverRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
	uow.AssertExpectations(t)

	assert.Equal(t, order.Assigned, testOrder.Status())

	added := deliveryRepo.Calls[1].Arguments[1].(*delivery.Delivery)
	assert.True(t, added.ID().IsEqual(deliveryID))
	assert.True(t, added.Order().IsEqual(testOrder.ID()))
	assert.True(t, added.Driver().IsEqual(testDriver.ID()))
	assert.Equal(t, delivery.Assigned, added.Status())
}

func TestAssignDriverCommandHandler_Handle_DriverNotAvailable(t *testing.T) {
	ctx := t.Context()
	testOrder := readyOrder(t)
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Jane Smith", "", "")
	require.NoError(t, err)
	testDriver.SetAvailable(false)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	driverRepo := new(MockAssignDriverRepository)
	deliveryRepo := new(MockAssignDeliveryRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, 3, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDriverIsNotAvailable)
	assert.Equal(t, order.Ready, testOrder.Status())
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAssignDriverCommandHandler_Handle_DriverOverloaded(t *testing.T) {
	ctx := t.Context()
	testOrder := readyOrder(t)
	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Jane Smith", "", "")
	require.NoError(t, err)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	driverRepo := new(MockAssignDriverRepository)
	deliveryRepo := new(MockAssignDeliveryRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("CountActiveByDriver", ctx, testDriver.ID()).Return(3, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, 3, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDriverIsOverloaded)
	assert.Equal(t, order.Ready, testOrder.Status())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestAssignDriverCommandHandler_Handle_OrderAwaitingPrescription(t *testing.T) {
	ctx := t.Context()

	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	require.NoError(t, err)
	price, err := kernel.NewMoney(1599)
	require.NoError(t, err)
	line, err := order.NewLine(kernel.NewUUID(), "Amoxicillin 500mg", 1, price)
	require.NoError(t, err)
	testOrder, err := order.NewOrder(
		kernel.NewUUID(), owner, []order.Line{line},
		"Main Street 1", kernel.StandardDeliveryWindow(), true, time.Now(),
	)
	require.NoError(t, err)
	require.Equal(t, order.PendingPrescription, testOrder.Status())

	testDriver, err := driver.NewDriver(kernel.NewUUID(), "Jane Smith", "", "")
	require.NoError(t, err)

	cmd, err := commands.NewAssignDriverCommand(testOrder.ID(), testDriver.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockAssignOrderRepository)
	driverRepo := new(MockAssignDriverRepository)
	deliveryRepo := new(MockAssignDeliveryRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("DriverRepository").Return(driverRepo).Once(),
		driverRepo.On("Get", ctx, testDriver.ID()).Return(testDriver, nil).Once(),
		uow.On("DeliveryRepository").Return(deliveryRepo).Once(),
		deliveryRepo.On("CountActiveByDriver", ctx, testDriver.ID()).Return(0, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignDriverCommandHandler(factory, 3, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
	deliveryRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAssignDriverCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AssignDriverCommand{} // not constructed properly

	factory := new(MockAssignUoWFactory)
	handler := commands.NewAssignDriverCommandHandler(factory, 3, nil, nil)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrAssignDriverCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
