package commands_test

import (
	"context"
	"testing"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"
	"pharmacy/internal/core/domain/model/order"
	"pharmacy/internal/core/ports"
	"pharmacy/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckoutCartRepository struct{ mock.Mock }

func (m *MockCheckoutCartRepository) Get(ctx context.Context, owner kernel.OwnerRef) (*cart.Cart, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCheckoutCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCheckoutCartRepository) Clear(ctx context.Context, owner kernel.OwnerRef) error {
	args := m.Called(ctx, owner)
	return args.Error(0)
}

type MockCheckoutItemRepository struct{ mock.Mock }

func (m *MockCheckoutItemRepository) Add(ctx context.Context, aggregate *inventory.StockItem) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCheckoutItemRepository) Update(ctx context.Context, aggregate *inventory.StockItem) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCheckoutItemRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockCheckoutItemRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*inventory.StockItem, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

func (m *MockCheckoutItemRepository) GetAll(ctx context.Context) ([]*inventory.StockItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockItem), args.Error(1)
}

type MockCheckoutLedger struct{ mock.Mock }

func (m *MockCheckoutLedger) ReserveAll(
	ctx context.Context,
	orderID kernel.UUID,
	lines []inventory.ReservationLine,
) (*inventory.Reservation, error) {
	args := m.Called(ctx, orderID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Reservation), args.Error(1)
}

func (m *MockCheckoutLedger) ReleaseAll(ctx context.Context, reservationID kernel.UUID) error {
	args := m.Called(ctx, reservationID)
	return args.Error(0)
}

func (m *MockCheckoutLedger) Get(ctx context.Context, reservationID kernel.UUID) (*inventory.Reservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Reservation), args.Error(1)
}

type MockCheckoutOrderRepository struct{ mock.Mock }

func (m *MockCheckoutOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCheckoutOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockCheckoutOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockCheckoutOrderRepository) GetByOwner(ctx context.Context, owner kernel.OwnerRef) ([]*order.Order, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockCheckoutOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockCheckoutOrderRepository) GetAllInReadyStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCheckoutUoW) StockItemRepository() ports.StockItemRepository {
	args := m.Called()
	return args.Get(0).(ports.StockItemRepository)
}

func (m *MockCheckoutUoW) InventoryLedger() ports.InventoryLedger {
	args := m.Called()
	return args.Get(0).(ports.InventoryLedger)
}

func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

func checkoutFixtures(t *testing.T, requiresPrescription bool) (kernel.OwnerRef, *cart.Cart, *inventory.StockItem) {
	t.Helper()

	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	require.NoError(t, err)

	price, err := kernel.NewMoney(499)
	require.NoError(t, err)

	item, err := inventory.NewStockItem(kernel.NewUUID(), "Ibuprofen 200mg", price, 10, 50, requiresPrescription)
	require.NoError(t, err)

	ownerCart, err := cart.NewCart(owner)
	require.NoError(t, err)
	require.NoError(t, ownerCart.AddItem(item.ID(), 2))

	return owner, ownerCart, item
}

func TestCheckoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	owner, ownerCart, item := checkoutFixtures(t, false)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, owner, "Main Street 1", kernel.StandardDeliveryWindow())
	require.NoError(t, err)

	resLine, err := inventory.NewReservationLine(item.ID(), 2)
	require.NoError(t, err)
	reservation, err := inventory.NewReservation(kernel.NewUUID(), []inventory.ReservationLine{resLine})
	require.NoError(t, err)

	carts := new(MockCheckoutCartRepository)
	itemRepo := new(MockCheckoutItemRepository)
	ledger := new(MockCheckoutLedger)
	orderRepo := new(MockCheckoutOrderRepository)
	uow := new(MockCheckoutUoW)

	carts.On("Get", ctx, owner).Return(ownerCart, nil).Once()
	carts.On("Clear", ctx, owner).Return(nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetBatch", ctx, mock.Anything).Return([]*inventory.StockItem{item}, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("ReserveAll", ctx, orderID, mock.Anything).Return(reservation, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, nil, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	carts.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)

	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.Ready, added.Status())
	require.NotNil(t, added.Reservation())
	assert.True(t, added.Reservation().IsEqual(reservation.ID()))
	assert.Len(t, added.Lines(), 1)
	assert.Equal(t, "Ibuprofen 200mg", added.Lines()[0].ItemName())
}

func TestCheckoutCommandHandler_Handle_PrescriptionItem(t *testing.T) {
	ctx := t.Context()
	owner, ownerCart, item := checkoutFixtures(t, true)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, owner, "Main Street 1", kernel.StandardDeliveryWindow())
	require.NoError(t, err)

	resLine, err := inventory.NewReservationLine(item.ID(), 2)
	require.NoError(t, err)
	reservation, err := inventory.NewReservation(kernel.NewUUID(), []inventory.ReservationLine{resLine})
	require.NoError(t, err)

	carts := new(MockCheckoutCartRepository)
	itemRepo := new(MockCheckoutItemRepository)
	ledger := new(MockCheckoutLedger)
	orderRepo := new(MockCheckoutOrderRepository)
	uow := new(MockCheckoutUoW)

	carts.On("Get", ctx, owner).Return(ownerCart, nil).Once()
	carts.On("Clear", ctx, owner).Return(nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetBatch", ctx, mock.Anything).Return([]*inventory.StockItem{item}, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("ReserveAll", ctx, orderID, mock.Anything).Return(reservation, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, nil, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)

	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.PendingPrescription, added.Status())
}

func TestCheckoutCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	owner, ownerCart, item := checkoutFixtures(t, false)

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutCommand(orderID, owner, "Main Street 1", kernel.StandardDeliveryWindow())
	require.NoError(t, err)

	carts := new(MockCheckoutCartRepository)
	itemRepo := new(MockCheckoutItemRepository)
	ledger := new(MockCheckoutLedger)
	orderRepo := new(MockCheckoutOrderRepository)
	uow := new(MockCheckoutUoW)

	carts.On("Get", ctx, owner).Return(ownerCart, nil).Once()

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("StockItemRepository").Return(itemRepo).Once(),
		itemRepo.On("GetBatch", ctx, mock.Anything).Return([]*inventory.StockItem{item}, nil).Once(),
		uow.On("InventoryLedger").Return(ledger).Once(),
		ledger.On("ReserveAll", ctx, orderID, mock.Anything).
			Return(nil, errs.NewInsufficientStockError(item.ID().String(), 2, 1)).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCheckoutCommandHandler(factory, carts, nil, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInsufficientStock)
	orderRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCheckoutCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	owner, err := kernel.NewCustomerRef(kernel.NewUUID())
	require.NoError(t, err)

	emptyCart, err := cart.NewCart(owner)
	require.NoError(t, err)

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), owner, "Main Street 1", kernel.StandardDeliveryWindow())
	require.NoError(t, err)

	carts := new(MockCheckoutCartRepository)
	carts.On("Get", ctx, owner).Return(emptyCart, nil).Once()

	factory := new(MockCheckoutUoWFactory)
	handler := commands.NewCheckoutCommandHandler(factory, carts, nil, nil, nil)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCartIsEmpty)
	factory.AssertNotCalled(t, "Create")
}

func TestCheckoutCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CheckoutCommand{} // not constructed properly

	carts := new(MockCheckoutCartRepository)
	factory := new(MockCheckoutUoWFactory)

	handler := commands.NewCheckoutCommandHandler(factory, carts, nil, nil, nil)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCheckoutCommandIsNotConstructed)
	carts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}
