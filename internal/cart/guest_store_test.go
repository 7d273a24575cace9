package cart

import (
	"context"
	"testing"
	"time"

	"chaikada_store_front/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStorage is the in-memory stand-in for Redis.
type memStorage struct {
	data map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{data: map[string]string{}}
}

func (m *memStorage) Get(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memStorage) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *memStorage) Del(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func teaProduct() models.Product {
	return models.Product{
		ID:    "p1",
		Name:  "Assam Gold",
		Image: "/img/assam.jpg",
		Variants: []models.Variant{
			{Size: "100g", Price: 200},
			{Size: "250g", Price: 450},
		},
	}
}

func newTestStore() (*GuestStore, *memStorage) {
	storage := newMemStorage()
	return NewGuestStore(storage, "sess-1"), storage
}

func TestGetReturnsEmptyCartWhenAbsent(t *testing.T) {
	store, _ := newTestStore()

	cart, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestGetTreatsCorruptDataAsEmpty(t *testing.T) {
	store, storage := newTestStore()
	storage.data["guestcart:sess-1"] = "{not json"

	cart, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestAddSnapshotsVariantPrice(t *testing.T) {
	store, _ := newTestStore()

	cart, err := store.Add(context.Background(), teaProduct(), "100g", 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 200.0, cart.Items[0].Price)
	assert.Equal(t, 400.0, cart.Items[0].ItemTotal)
	assert.Equal(t, 400.0, cart.TotalPrice)
}

func TestAddUnknownVariantFails(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Add(context.Background(), teaProduct(), "500g", 1)
	assert.ErrorIs(t, err, ErrVariantNotFound)
}

func TestAddSameKeyIncrementsQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 2)
	require.NoError(t, err)
	cart, err := store.Add(ctx, teaProduct(), "100g", 2)
	require.NoError(t, err)

	// add is deliberately not idempotent: same key twice means 2q, not q
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, 800.0, cart.TotalPrice)
}

func TestAddDifferentVariantKeepsSeparateLines(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 1)
	require.NoError(t, err)
	cart, err := store.Add(ctx, teaProduct(), "250g", 1)
	require.NoError(t, err)

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 650.0, cart.TotalPrice)
}

func TestUpdateMissingItemFails(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.Update(context.Background(), "p1", "100g", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateSetsQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 1)
	require.NoError(t, err)

	cart, err := store.Update(ctx, "p1", "100g", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 1000.0, cart.TotalPrice)
}

func TestUpdateZeroOrNegativeQuantityRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		store, _ := newTestStore()
		ctx := context.Background()

		_, err := store.Add(ctx, teaProduct(), "100g", 2)
		require.NoError(t, err)

		cart, err := store.Update(ctx, "p1", "100g", qty)
		require.NoError(t, err)
		assert.Empty(t, cart.Items, "quantity %d should delete the line", qty)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 1)
	require.NoError(t, err)

	first, err := store.Remove(ctx, "p1", "100g")
	require.NoError(t, err)
	second, err := store.Remove(ctx, "p1", "100g")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Empty(t, second.Items)
}

func TestClearEmptiesStorage(t *testing.T) {
	store, storage := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 1)
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	assert.Empty(t, storage.data)
	cart, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestItemCountAndOrderItems(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	_, err := store.Add(ctx, teaProduct(), "100g", 2)
	require.NoError(t, err)
	_, err = store.Add(ctx, teaProduct(), "250g", 3)
	require.NoError(t, err)

	count, err := store.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	items, err := store.OrderItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.OrderItem{
		{ProductID: "p1", VariantSize: "100g", Quantity: 2},
		{ProductID: "p1", VariantSize: "250g", Quantity: 3},
	}, items)
}
