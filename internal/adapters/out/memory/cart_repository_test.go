package memory_test

import (
	"sync"
	"testing"

	"pharmacy/internal/adapters/out/memory"
	"pharmacy/internal/core/domain/model/cart"
	"pharmacy/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guestOwner(t *testing.T, token string) kernel.OwnerRef {
	t.Helper()
	owner, err := kernel.NewGuestRef(token)
	require.NoError(t, err)
	return owner
}

func TestInMemoryCartRepository_GetUnknownOwnerReturnsEmptyCart(t *testing.T) {
	repo := memory.NewInMemoryCartRepository()
	owner := guestOwner(t, "session-abc")

	c, err := repo.Get(t.Context(), owner)

	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Owner().IsEqual(owner))
}

func TestInMemoryCartRepository_SaveAndGetRoundTrip(t *testing.T) {
	repo := memory.NewInMemoryCartRepository()
	owner := guestOwner(t, "session-abc")
	itemID := kernel.NewUUID()

	c, err := cart.NewCart(owner)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(itemID, 2))
	require.NoError(t, repo.Save(t.Context(), c))

	stored, err := repo.Get(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, stored.Lines(), 1)
	assert.True(t, stored.Lines()[0].ItemID().IsEqual(itemID))
	assert.Equal(t, 2, stored.Lines()[0].Quantity())
}

func TestInMemoryCartRepository_StoredCartIsACopy(t *testing.T) {
	repo := memory.NewInMemoryCartRepository()
	owner := guestOwner(t, "session-abc")

	c, err := cart.NewCart(owner)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), 1))
	require.NoError(t, repo.Save(t.Context(), c))

	// Mutating the aggregate after save must not leak into the store.
	require.NoError(t, c.AddItem(kernel.NewUUID(), 3))

	stored, err := repo.Get(t.Context(), owner)
	require.NoError(t, err)
	assert.Len(t, stored.Lines(), 1)
}

func TestInMemoryCartRepository_ClearIsIdempotent(t *testing.T) {
	repo := memory.NewInMemoryCartRepository()
	owner := guestOwner(t, "session-abc")

	c, err := cart.NewCart(owner)
	require.NoError(t, err)
	require.NoError(t, c.AddItem(kernel.NewUUID(), 1))
	require.NoError(t, repo.Save(t.Context(), c))

	require.NoError(t, repo.Clear(t.Context(), owner))
	require.NoError(t, repo.Clear(t.Context(), owner))

	stored, err := repo.Get(t.Context(), owner)
	require.NoError(t, err)
	assert.True(t, stored.IsEmpty())
}

func TestInMemoryCartRepository_ConcurrentSessionsDoNotInterfere(t *testing.T) {
	repo := memory.NewInMemoryCartRepository()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			owner := guestOwner(t, kernel.NewUUID().String())
			c, err := cart.NewCart(owner)
			assert.NoError(t, err)
			assert.NoError(t, c.AddItem(kernel.NewUUID(), n%5+1))
			assert.NoError(t, repo.Save(t.Context(), c))

			stored, err := repo.Get(t.Context(), owner)
			assert.NoError(t, err)
			assert.Len(t, stored.Lines(), 1)
		}(i)
	}
	wg.Wait()
}

func TestOwnerRoutedCartRepository_RoutesByOwnerKind(t *testing.T) {
	customerStore := memory.NewInMemoryCartRepository()
	guestStore := memory.NewInMemoryCartRepository()
	router := memory.NewOwnerRoutedCartRepository(customerStore, guestStore)

	customer, err := kernel.NewCustomerRef(kernel.NewUUID())
	require.NoError(t, err)
	guest := guestOwner(t, "session-abc")

	customerCart, err := cart.NewCart(customer)
	require.NoError(t, err)
	require.NoError(t, customerCart.AddItem(kernel.NewUUID(), 1))
	require.NoError(t, router.Save(t.Context(), customerCart))

	guestCart, err := cart.NewCart(guest)
	require.NoError(t, err)
	require.NoError(t, guestCart.AddItem(kernel.NewUUID(), 2))
	require.NoError(t, router.Save(t.Context(), guestCart))

	fromCustomerStore, err := customerStore.Get(t.Context(), customer)
	require.NoError(t, err)
	assert.Len(t, fromCustomerStore.Lines(), 1)

	fromGuestStore, err := guestStore.Get(t.Context(), guest)
	require.NoError(t, err)
	assert.Len(t, fromGuestStore.Lines(), 1)

	// The guest cart must not have landed in the customer backend.
	crossCheck, err := customerStore.Get(t.Context(), guest)
	require.NoError(t, err)
	assert.True(t, crossCheck.IsEmpty())
}
