package inventory_test

import (
	"testing"

	"pharmacy/internal/core/domain/model/inventory"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLines(t *testing.T, quantities ...int) []inventory.ReservationLine {
	t.Helper()
	lines := make([]inventory.ReservationLine, 0, len(quantities))
	for _, qty := range quantities {
		line, err := inventory.NewReservationLine(kernel.NewUUID(), qty)
		require.NoError(t, err)
		lines = append(lines, line)
	}
	return lines
}

func TestNewReservationLine(t *testing.T) {
	t.Run("should create line with positive quantity", func(t *testing.T) {
		itemID := kernel.NewUUID()

		line, err := inventory.NewReservationLine(itemID, 3)

		require.NoError(t, err)
		assert.True(t, line.ItemID().IsEqual(itemID))
		assert.Equal(t, 3, line.Quantity())
	})

	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := inventory.NewReservationLine(kernel.NewUUID(), 0)

		require.Error(t, err)
	})

	t.Run("should reject negative quantity", func(t *testing.T) {
		_, err := inventory.NewReservationLine(kernel.NewUUID(), -2)

		require.Error(t, err)
	})
}

func TestNewReservation(t *testing.T) {
	t.Run("should create unreleased reservation", func(t *testing.T) {
		id := kernel.NewUUID()
		lines := makeLines(t, 2, 5)

		reservation, err := inventory.NewReservation(id, lines)

		require.NoError(t, err)
		assert.NoError(t, reservation.Validate())
		assert.True(t, reservation.ID().IsEqual(id))
		assert.Len(t, reservation.Lines(), 2)
		assert.False(t, reservation.Released())
		assert.Nil(t, reservation.OrderID())
	})

	t.Run("should reject empty lines", func(t *testing.T) {
		_, err := inventory.NewReservation(kernel.NewUUID(), nil)

		require.Error(t, err)
		require.ErrorIs(t, err, inventory.ErrReservationHasNoLines)
	})
}

func TestReservation_MarkReleased(t *testing.T) {
	t.Run("first release succeeds", func(t *testing.T) {
		reservation, _ := inventory.NewReservation(kernel.NewUUID(), makeLines(t, 1))

		err := reservation.MarkReleased()

		require.NoError(t, err)
		assert.True(t, reservation.Released())
	})

	t.Run("second release is rejected", func(t *testing.T) {
		reservation, _ := inventory.NewReservation(kernel.NewUUID(), makeLines(t, 1))
		require.NoError(t, reservation.MarkReleased())

		err := reservation.MarkReleased()

		require.Error(t, err)
		require.ErrorIs(t, err, inventory.ErrReservationAlreadyReleased)
	})
}

func TestReservation_AttachOrder(t *testing.T) {
	t.Run("links the backing order", func(t *testing.T) {
		reservation, _ := inventory.NewReservation(kernel.NewUUID(), makeLines(t, 1))
		orderID := kernel.NewUUID()

		require.NoError(t, reservation.AttachOrder(orderID))

		require.NotNil(t, reservation.OrderID())
		assert.True(t, reservation.OrderID().IsEqual(orderID))
	})

	t.Run("rejects invalid order id", func(t *testing.T) {
		reservation, _ := inventory.NewReservation(kernel.NewUUID(), makeLines(t, 1))
		var orderID kernel.UUID

		require.Error(t, reservation.AttachOrder(orderID))
	})
}

func TestRestoreReservation(t *testing.T) {
	t.Run("restores released reservation with order link", func(t *testing.T) {
		id := kernel.NewUUID()
		orderID := kernel.NewUUID()
		lines := makeLines(t, 3)

		reservation, err := inventory.RestoreReservation(id, &orderID, lines, true)

		require.NoError(t, err)
		assert.True(t, reservation.Released())
		require.NotNil(t, reservation.OrderID())
		assert.True(t, reservation.OrderID().IsEqual(orderID))
	})
}
