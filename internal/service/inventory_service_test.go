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

func TestRecordMovementFoldsIntoStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	steps := []struct {
		movementType string
		quantity     string
		want         string
	}{
		{entity.MovementOut, "3", "7"},
		{entity.MovementIn, "5", "12"},
		{entity.MovementAdjust, "2", "2"},
	}

	for _, step := range steps {
		_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
			InventoryID:  inv.ID,
			MovementType: step.movementType,
			Quantity:     dec(step.quantity),
		})
		require.NoError(t, err)

		got, err := f.store.Inventories().GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, got.CurrentStock.Equal(dec(step.want)),
			"after %s %s: got %s, want %s", step.movementType, step.quantity, got.CurrentStock, step.want)
	}

	movements, err := f.inventory.ListMovements(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 3)
}

func TestRecordMovementOutExceedingStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "5")

	_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
		InventoryID:  inv.ID,
		MovementType: entity.MovementOut,
		Quantity:     dec("6"),
	})
	require.ErrorIs(t, err, ErrInsufficientStock)

	got, err := f.store.Inventories().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("5")), "stock must be unchanged, got %s", got.CurrentStock)

	movements, err := f.inventory.ListMovements(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, movements, "rejected movement must not be recorded")
}

func TestRecordMovementTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	src := f.addInventory(t, "10")

	other := entity.RetailPoint{OwnerID: f.seller.ID, Name: "Annex", RetailPointType: "SHOP", IsActive: true}
	require.NoError(t, f.store.RetailPoints().Create(ctx, &other))
	dst := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   other.ID,
		CurrentStock:    dec("1"),
		IsAvailable:     true,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(ctx, dst))

	_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
		InventoryID:     src.ID,
		MovementType:    entity.MovementTransfer,
		Quantity:        dec("4"),
		DestInventoryID: &dst.ID,
	})
	require.NoError(t, err)

	gotSrc, err := f.store.Inventories().GetByID(ctx, src.ID)
	require.NoError(t, err)
	gotDst, err := f.store.Inventories().GetByID(ctx, dst.ID)
	require.NoError(t, err)
	assert.True(t, gotSrc.CurrentStock.Equal(dec("6")), "source stock %s", gotSrc.CurrentStock)
	assert.True(t, gotDst.CurrentStock.Equal(dec("5")), "destination stock %s", gotDst.CurrentStock)
}

func TestRecordMovementTransferToSelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
		InventoryID:     inv.ID,
		MovementType:    entity.MovementTransfer,
		Quantity:        dec("4"),
		DestInventoryID: &inv.ID,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	// A transfer onto itself folds to net zero; the stock must not move.
	got, err := f.store.Inventories().GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentStock.Equal(dec("10")), "stock %s", got.CurrentStock)

	movements, err := f.inventory.ListMovements(ctx, inv.ID)
	require.NoError(t, err)
	assert.Empty(t, movements)
}

func TestRecordMovementTransferWithoutDestination(t *testing.T) {
	f := newFixture(t)
	inv := f.addInventory(t, "10")

	_, err := f.inventory.RecordMovement(context.Background(), &entity.StockMovement{
		InventoryID:  inv.ID,
		MovementType: entity.MovementTransfer,
		Quantity:     dec("4"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecordMovementValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	cases := []struct {
		name         string
		movementType string
		quantity     string
	}{
		{"zero quantity in", entity.MovementIn, "0"},
		{"negative quantity out", entity.MovementOut, "-1"},
		{"negative adjust", entity.MovementAdjust, "-2"},
		{"unknown type", "XYZ", "1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
				InventoryID:  inv.ID,
				MovementType: tc.movementType,
				Quantity:     dec(tc.quantity),
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestRecordMovementPublishesStockAlert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inv := f.addInventory(t, "10")
	inv.AlertThreshold = dec("5")
	inv.UpdatedAt = time.Now().UTC()
	require.NoError(t, f.store.Inventories().Update(ctx, inv))

	_, err := f.inventory.RecordMovement(ctx, &entity.StockMovement{
		InventoryID:  inv.ID,
		MovementType: entity.MovementOut,
		Quantity:     dec("6"),
	})
	require.NoError(t, err)

	require.Len(t, f.publisher.events, 1)
	alert, ok := f.publisher.events[0].(events.StockAlertEvent)
	require.True(t, ok)
	assert.Equal(t, f.seller.ID, alert.OwnerID)
	assert.Equal(t, "MF-1KG", alert.SKU)
	assert.True(t, alert.CurrentStock.Equal(dec("4")))
}

func TestDeleteInventoryReferencedByOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	_, err := f.cart.AddItem(ctx, f.buyer.ID, inv.ID, dec("2"))
	require.NoError(t, err)
	_, err = f.order.Checkout(ctx, f.buyer.ID, "", nil)
	require.NoError(t, err)

	err = f.inventory.Delete(ctx, f.seller.ID, inv.ID)
	require.ErrorIs(t, err, repository.ErrInventoryInUse)

	_, err = f.store.Inventories().GetByID(ctx, inv.ID)
	assert.NoError(t, err)
}

func TestDeleteInventoryPermission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := f.addInventory(t, "10")

	err := f.inventory.Delete(ctx, f.buyer.ID, inv.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, f.inventory.Delete(ctx, f.seller.ID, inv.ID))
	_, err = f.store.Inventories().GetByID(ctx, inv.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateRetailPointSellerOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inventory.CreateRetailPoint(ctx, f.buyer.ID, &entity.RetailPoint{Name: "Stall", RetailPointType: "STALL"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	rp, err := f.inventory.CreateRetailPoint(ctx, f.seller.ID, &entity.RetailPoint{Name: "Stall", RetailPointType: "STALL"})
	require.NoError(t, err)
	assert.Equal(t, f.seller.ID, rp.OwnerID)
	assert.True(t, rp.IsActive)

	points, err := f.inventory.ListRetailPoints(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestListForUserScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	available := f.addInventory(t, "10")

	hidden := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   f.retailPoint.ID,
		CurrentStock:    dec("0"),
		IsAvailable:     false,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(ctx, hidden))

	buyerView, err := f.inventory.ListForUser(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, buyerView, 1)
	assert.Equal(t, available.ID, buyerView[0].ID)

	sellerView, err := f.inventory.ListForUser(ctx, f.seller.ID)
	require.NoError(t, err)
	assert.Len(t, sellerView, 2)

	manufacturerView, err := f.inventory.ListForUser(ctx, f.manufacturer.ID)
	require.NoError(t, err)
	assert.Len(t, manufacturerView, 2)
}
