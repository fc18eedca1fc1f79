package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
)

type NotificationService struct {
	notifications repository.NotificationRepository
}

func NewNotificationService(notifications repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) ListForUser(ctx context.Context, userID int) ([]entity.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id int) error {
	return s.notifications.MarkRead(ctx, id, userID)
}

// HandleOrderStatusChanged writes the ORDER_UPDATE notification for a status
// transition event consumed from Kafka.
func (s *NotificationService) HandleOrderStatusChanged(ctx context.Context, ev events.OrderEvent) error {
	orderID := ev.OrderID
	return s.notifications.Create(ctx, &entity.Notification{
		UserID:           ev.UserID,
		NotificationType: entity.NotificationOrderUpdate,
		Message:          fmt.Sprintf("Your order #%s is now %s", ev.OrderNumber, ev.Status),
		RelatedObjectID:  &orderID,
		CreatedAt:        time.Now().UTC(),
	})
}

// HandleStockAlert writes the STOCK_ALERT notification for the retail point
// owner.
func (s *NotificationService) HandleStockAlert(ctx context.Context, ev events.StockAlertEvent) error {
	inventoryID := ev.InventoryID
	return s.notifications.Create(ctx, &entity.Notification{
		UserID:           ev.OwnerID,
		NotificationType: entity.NotificationStockAlert,
		Message:          fmt.Sprintf("Stock for %s is down to %s (threshold %s)", ev.SKU, ev.CurrentStock, ev.AlertThreshold),
		RelatedObjectID:  &inventoryID,
		CreatedAt:        time.Now().UTC(),
	})
}
