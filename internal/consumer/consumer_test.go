package consumer

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
	"marketplace-backend/internal/service"
)

func TestProcessMessageOrderStatusChanged(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := service.NewNotificationService(store.Notifications())
	c := NewConsumer(nil, svc)

	ev := events.OrderEvent{
		Type:        events.TypeOrderStatusChanged,
		OrderID:     9,
		OrderNumber: "ORD-XYZ",
		UserID:      3,
		Status:      entity.OrderStatusConfirmed,
	}
	value, err := json.Marshal(ev)
	require.NoError(t, err)

	c.processMessage(ctx, kafka.Message{
		Key:   []byte("order.status_changed.9"),
		Value: value,
	})

	list, err := store.Notifications().ListByUser(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationOrderUpdate, list[0].NotificationType)
}

func TestProcessMessageStockAlert(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := service.NewNotificationService(store.Notifications())
	c := NewConsumer(nil, svc)

	ev := events.StockAlertEvent{
		Type:        events.TypeStockAlert,
		InventoryID: 4,
		OwnerID:     8,
		SKU:         "SKU-1",
	}
	value, err := json.Marshal(ev)
	require.NoError(t, err)

	c.processMessage(ctx, kafka.Message{
		Key:   []byte("stock.alert.4"),
		Value: value,
	})

	list, err := store.Notifications().ListByUser(ctx, 8)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.NotificationStockAlert, list[0].NotificationType)
}

func TestProcessMessageIgnoresCreation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := service.NewNotificationService(store.Notifications())
	c := NewConsumer(nil, svc)

	c.processMessage(ctx, kafka.Message{
		Key:   []byte("order.created.1"),
		Value: []byte(`{}`),
	})

	list, err := store.Notifications().ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}
