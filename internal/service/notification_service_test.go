package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
)

func TestHandleOrderStatusChanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.notification.HandleOrderStatusChanged(ctx, events.OrderEvent{
		Type:           events.TypeOrderStatusChanged,
		OrderID:        42,
		OrderNumber:    "ORD-ABC123",
		UserID:         f.buyer.ID,
		Status:         entity.OrderStatusShipped,
		PreviousStatus: entity.OrderStatusProcessing,
	})
	require.NoError(t, err)

	list, err := f.notification.ListForUser(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationOrderUpdate, list[0].NotificationType)
	assert.Contains(t, list[0].Message, "ORD-ABC123")
	assert.Contains(t, list[0].Message, entity.OrderStatusShipped)
	require.NotNil(t, list[0].RelatedObjectID)
	assert.Equal(t, 42, *list[0].RelatedObjectID)
}

func TestHandleStockAlert(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.notification.HandleStockAlert(ctx, events.StockAlertEvent{
		Type:           events.TypeStockAlert,
		InventoryID:    7,
		OwnerID:        f.seller.ID,
		SKU:            "MF-1KG",
		CurrentStock:   dec("2"),
		AlertThreshold: dec("5"),
	})
	require.NoError(t, err)

	list, err := f.notification.ListForUser(ctx, f.seller.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationStockAlert, list[0].NotificationType)
	assert.Contains(t, list[0].Message, "MF-1KG")
}

func TestMarkReadScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n := entity.Notification{UserID: f.buyer.ID, NotificationType: entity.NotificationOrderUpdate, Message: "hi"}
	require.NoError(t, f.store.Notifications().Create(ctx, &n))

	err := f.notification.MarkRead(ctx, f.seller.ID, n.ID)
	require.Error(t, err)

	require.NoError(t, f.notification.MarkRead(ctx, f.buyer.ID, n.ID))
	list, err := f.notification.ListForUser(ctx, f.buyer.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsRead)
}
