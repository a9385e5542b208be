package kernel_test

import (
	"testing"

	"pharmacy/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money from cents", func(t *testing.T) {
		m, err := kernel.NewMoney(1250)

		require.NoError(t, err)
		assert.NoError(t, m.Validate())
		assert.Equal(t, int64(1250), m.Cents())
		assert.Equal(t, "12.50", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var m kernel.Money

		require.Error(t, m.Validate())
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, m.Validate())
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add sums amounts", func(t *testing.T) {
		a, _ := kernel.NewMoney(100)
		b, _ := kernel.NewMoney(250)

		sum := a.Add(b)

		assert.Equal(t, int64(350), sum.Cents())
		assert.NoError(t, sum.Validate())
	})

	t.Run("multiply by quantity freezes line totals", func(t *testing.T) {
		unit, _ := kernel.NewMoney(499)

		total := unit.MultiplyQty(3)

		assert.Equal(t, int64(1497), total.Cents())
	})

	t.Run("zero money is valid", func(t *testing.T) {
		z := kernel.ZeroMoney()

		assert.NoError(t, z.Validate())
		assert.Equal(t, int64(0), z.Cents())
		assert.Equal(t, "0.00", z.String())
	})
}
