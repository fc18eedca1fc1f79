package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
)

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	flour := f.addInventory(t, "10")

	override := dec("9.50")
	oil := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   f.retailPoint.ID,
		CurrentStock:    dec("4"),
		PriceOverride:   &override,
		IsAvailable:     true,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(ctx, oil))

	_, err := f.cart.AddItem(ctx, f.buyer.ID, flour.ID, dec("2"))
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, f.buyer.ID, oil.ID, dec("1"))
	require.NoError(t, err)

	order, err := f.order.Checkout(ctx, f.buyer.ID, "", nil)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)
	assert.True(t, order.TotalAmount.Equal(dec("19.50")), "total %s", order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.True(t, order.Items[0].UnitPrice.Equal(dec("5.00")))
	assert.True(t, order.Items[1].UnitPrice.Equal(dec("9.50")))

	// Cart is drained.
	cart, err := f.cart.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Stock is folded down through OUT movements.
	gotFlour, err := f.store.Inventories().GetByID(ctx, flour.ID)
	require.NoError(t, err)
	assert.True(t, gotFlour.CurrentStock.Equal(dec("8")), "flour stock %s", gotFlour.CurrentStock)

	movements, err := f.inventory.ListMovements(ctx, flour.ID)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, entity.MovementOut, movements[0].MovementType)
	assert.Equal(t, "Order #"+order.OrderNumber, movements[0].Reference)
	require.NotNil(t, movements[0].CreatedBy)
	assert.Equal(t, f.buyer.ID, *movements[0].CreatedBy)

	require.Len(t, f.publisher.events, 1)
	ev, ok := f.publisher.events[0].(events.OrderEvent)
	require.True(t, ok)
	assert.Equal(t, events.TypeOrderCreated, ev.Type)
	assert.Equal(t, order.ID, ev.OrderID)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.order.Checkout(ctx, f.buyer.ID, "", nil)
	require.ErrorIs(t, err, ErrEmptyCart)

	orders, err := f.order.ListForUser(ctx, f.buyer.ID, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, f.publisher.events)
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	plenty := f.addInventory(t, "10")

	scarce := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   f.retailPoint.ID,
		CurrentStock:    dec("1"),
		IsAvailable:     true,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(ctx, scarce))

	_, err := f.cart.AddItem(ctx, f.buyer.ID, plenty.ID, dec("2"))
	require.NoError(t, err)
	_, err = f.cart.AddItem(ctx, f.buyer.ID, scarce.ID, dec("3"))
	require.NoError(t, err)

	_, err = f.order.Checkout(ctx, f.buyer.ID, "", nil)
	require.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: cart, stock and ledger are untouched.
	cart, err := f.cart.Get(ctx, f.buyer.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)

	gotPlenty, err := f.store.Inventories().GetByID(ctx, plenty.ID)
	require.NoError(t, err)
	assert.True(t, gotPlenty.CurrentStock.Equal(dec("10")), "stock %s", gotPlenty.CurrentStock)

	movements, err := f.inventory.ListMovements(ctx, plenty.ID)
	require.NoError(t, err)
	assert.Empty(t, movements)

	orders, err := f.order.ListForUser(ctx, f.buyer.ID, "")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func checkoutOne(t *testing.T, f *fixture) *entity.Order {
	t.Helper()
	ctx := context.Background()
	inv := f.addInventory(t, "10")
	_, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("1"))
	require.NoError(t, err)
	order, err := f.order.Checkout(ctx, f.buyer.ID, "", nil)
	require.NoError(t, err)
	return order
}

func TestTransitionStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := checkoutOne(t, f)

	previous, updated, err := f.order.TransitionStatus(ctx, f.buyer.ID, order.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, previous)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)

	ev, ok := f.publisher.events[len(f.publisher.events)-1].(events.OrderEvent)
	require.True(t, ok)
	assert.Equal(t, events.TypeOrderStatusChanged, ev.Type)
	assert.Equal(t, entity.OrderStatusPending, ev.PreviousStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, ev.Status)
}

func TestTransitionStatusRejectsSkips(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := checkoutOne(t, f)

	_, _, err := f.order.TransitionStatus(ctx, f.buyer.ID, order.ID, entity.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrInvalidStatus)

	got, err := f.order.GetForUser(ctx, f.buyer.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, got.Status)
}

func TestTransitionStatusTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := checkoutOne(t, f)

	_, _, err := f.order.TransitionStatus(ctx, f.buyer.ID, order.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)

	_, _, err = f.order.TransitionStatus(ctx, f.buyer.ID, order.ID, entity.OrderStatusPending)
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := checkoutOne(t, f)

	// The buyer and the retail point owner both see the order.
	_, err := f.order.GetForUser(ctx, f.buyer.ID, order.ID)
	require.NoError(t, err)
	_, err = f.order.GetForUser(ctx, f.seller.ID, order.ID)
	require.NoError(t, err)

	// An unrelated user does not.
	stranger := entity.User{Username: "fatou", UserType: entity.UserTypeIndividual}
	require.NoError(t, f.store.Users().Create(ctx, &stranger))
	_, err = f.order.GetForUser(ctx, stranger.ID, order.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	sold, err := f.order.ListForUser(ctx, f.seller.ID, "")
	require.NoError(t, err)
	require.Len(t, sold, 1)
	assert.Equal(t, order.ID, sold[0].ID)

	none, err := f.order.ListForUser(ctx, stranger.ID, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
