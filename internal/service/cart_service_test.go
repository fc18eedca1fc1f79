package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
)

func TestCartAddItemAndTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	item, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("3"))
	require.NoError(t, err)
	assert.NotZero(t, item.ID)

	cart, err := f.cart.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cart.TotalItems)
	assert.True(t, cart.TotalAmount.Equal(dec("15.00")), "total %s", cart.TotalAmount)
}

func TestCartAddItemReplacesQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	first, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("3"))
	require.NoError(t, err)
	second, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("5"))
	require.NoError(t, err)

	// Replacing the quantity keeps the existing row; the returned item must
	// carry its real id, not a zero from the upsert path.
	require.NotZero(t, second.ID)
	assert.Equal(t, first.ID, second.ID)

	cart, err := f.cart.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, first.ID, cart.Items[0].ID)
	assert.True(t, cart.Items[0].Quantity.Equal(dec("5")))
}

func TestCartAddItemValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	_, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("0"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	unavailable := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   f.retailPoint.ID,
		CurrentStock:    dec("10"),
		IsAvailable:     false,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(ctx, unavailable))

	_, err = f.cart.AddItem(ctx, f.buyer.ID, unavailable.ID, dec("1"))
	assert.ErrorIs(t, err, ErrInventoryUnavailable)
}

func TestCartRemoveItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	item, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("2"))
	require.NoError(t, err)

	require.NoError(t, f.cart.RemoveItem(ctx, f.buyer.ID, item.ID))

	cart, err := f.cart.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
}
