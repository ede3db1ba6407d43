package cart

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/localstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		Category: "tees",
		Sizes:    []string{"S", "M", "L"},
		Colors:   []string{"#000000", "#FFFFFF"},
		Stock:    5,
	}
}

func newStore(t *testing.T) (*Store, *localstore.Memory) {
	t.Helper()
	mem := localstore.NewMemory()
	s := New(mem, "")
	require.NoError(t, s.Hydrate(context.Background()))
	return s, mem
}

func TestAddSameProductMergesQuantities(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddItem(ctx, product("a", 100), 2, "", ""))
	require.NoError(t, s.AddItem(ctx, product("a", 100), 5, "", ""))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestAddKeepsFirstVariantOnMerge(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "M", "#000000"))
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "XL", "#FFFFFF"))

	line, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, "M", line.SelectedSize)
	assert.Equal(t, "#000000", line.SelectedColor)
}

func TestAddUsesSnapshotPrice(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "", ""))
	// A later add with a new price only bumps the quantity.
	require.NoError(t, s.AddItem(ctx, product("a", 999), 1, "", ""))

	assert.True(t, s.TotalPrice().Equal(decimal.NewFromInt(200)), "got %s", s.TotalPrice())
}

func TestTotalsOverMixedOperations(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)

	assert.True(t, s.TotalPrice().IsZero())
	assert.Equal(t, 0, s.TotalItems())

	require.NoError(t, s.AddItem(ctx, product("a", 8500), 2, "L", ""))
	require.NoError(t, s.AddItem(ctx, domain.Product{ID: "b", Price: decimal.RequireFromString("12000.50")}, 1, "", ""))
	require.NoError(t, s.AddItem(ctx, product("c", 300), 4, "", ""))
	require.NoError(t, s.UpdateQuantity(ctx, "c", 2))
	require.NoError(t, s.RemoveItem(ctx, "a"))

	want := decimal.Zero
	items := 0
	for _, line := range s.Items() {
		want = want.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items += line.Quantity
	}
	assert.True(t, s.TotalPrice().Equal(want))
	assert.True(t, s.TotalPrice().Equal(decimal.RequireFromString("12600.50")))
	assert.Equal(t, items, s.TotalItems())
	assert.Equal(t, 3, s.TotalItems())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "", ""))

	require.NoError(t, s.RemoveItem(ctx, "does-not-exist"))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestUpdateQuantityStoresLiteralValue(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 3, "", ""))

	require.NoError(t, s.UpdateQuantity(ctx, "a", 0))
	line, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, 0, line.Quantity)

	require.NoError(t, s.UpdateQuantity(ctx, "a", -2))
	line, _ = s.Line("a")
	assert.Equal(t, -2, line.Quantity)
}

func TestUpdateQuantityUnknownIDLeavesCart(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 3, "", ""))
	require.NoError(t, s.UpdateQuantity(ctx, "zzz", 9))
	assert.Equal(t, 3, s.TotalItems())
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 3, "", ""))
	require.NoError(t, s.ClearCart(ctx))

	assert.Empty(t, s.Items())
	raw, err := mem.Get(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"items":[]},"version":0}`, string(raw))
}

func TestPersistedStateRoundTrips(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)

	require.NoError(t, s.AddItem(ctx, product("a", 100), 2, "M", "#000000"))
	require.NoError(t, s.AddItem(ctx, product("b", 250), 1, "", "#FFFFFF"))
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "S", ""))
	require.NoError(t, s.UpdateQuantity(ctx, "b", 4))
	require.NoError(t, s.AddItem(ctx, product("c", 10), 1, "", ""))
	require.NoError(t, s.RemoveItem(ctx, "c"))

	reloaded := New(mem, DefaultKey)
	require.NoError(t, reloaded.Hydrate(ctx))

	got := reloaded.Items()
	want := s.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].SelectedSize, got[i].SelectedSize)
		assert.Equal(t, want[i].SelectedColor, got[i].SelectedColor)
		assert.True(t, want[i].Price.Equal(got[i].Price))
	}
	assert.True(t, reloaded.TotalPrice().Equal(s.TotalPrice()))
}

func TestNamespacedStoresDoNotShareState(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	one := New(mem, "cart-store:one")
	two := New(mem, "cart-store:two")
	require.NoError(t, one.AddItem(ctx, product("a", 1), 1, "", ""))

	require.NoError(t, two.Hydrate(ctx))
	assert.Empty(t, two.Items())
}

func TestResetDropsPersistedEntry(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 1), 1, "", ""))
	require.NoError(t, s.Reset(ctx))

	assert.Empty(t, s.Items())
	_, err := mem.Get(ctx, DefaultKey)
	assert.ErrorIs(t, err, localstore.ErrNotFound)
}

func TestStorageFailureSurfacesAfterMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	s, mem := newStore(t)
	mem.FailWrites = errors.New("quota exceeded")

	err := s.AddItem(ctx, product("a", 100), 1, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, s.TotalItems())
}

func TestHydrateRejectsCorruptState(t *testing.T) {
	ctx := context.Background()
	mem := localstore.NewMemory()
	require.NoError(t, mem.Set(ctx, DefaultKey, []byte("{not json")))
	err := New(mem, "").Hydrate(ctx)
	require.Error(t, err)
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	require.NoError(t, s.AddItem(ctx, product("a", 100), 1, "", ""))

	items := s.Items()
	items[0].Quantity = 50
	items[0].Sizes[0] = "XXL"

	line, _ := s.Line("a")
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, "S", line.Sizes[0])
}

func TestCartScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t)
	a := product("A", 8500)

	require.Empty(t, s.Items())
	require.NoError(t, s.AddItem(ctx, a, 2, "", ""))
	assert.Equal(t, 2, s.TotalItems())

	require.NoError(t, s.AddItem(ctx, a, 1, "", ""))
	assert.Equal(t, 3, s.TotalItems())
	require.Len(t, s.Items(), 1)
	assert.Equal(t, 3, s.Items()[0].Quantity)

	require.NoError(t, s.UpdateQuantity(ctx, a.ID, 1))
	assert.Equal(t, 1, s.TotalItems())

	require.NoError(t, s.RemoveItem(ctx, a.ID))
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
}
