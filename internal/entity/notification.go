package entity

import "time"

const (
	NotificationOrderUpdate         = "ORDER_UPDATE"
	NotificationStockAlert          = "STOCK_ALERT"
	NotificationPaymentConfirmation = "PAYMENT_CONFIRMATION"
	NotificationDisputeUpdate       = "DISPUTE_UPDATE"
)

type Notification struct {
	ID               int       `json:"id"`
	UserID           int       `json:"user_id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	IsRead           bool      `json:"is_read"`
	RelatedObjectID  *int      `json:"related_object_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
