package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
	TypeStockAlert         = "stock.alert"
)

// OrderEvent is published after an order is created or changes status.
// PreviousStatus is empty for creation events.
type OrderEvent struct {
	Type           string          `json:"type"`
	OrderID        int             `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	UserID         int             `json:"user_id"`
	Status         string          `json:"status"`
	PreviousStatus string          `json:"previous_status,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// StockAlertEvent is published when a stock movement leaves an inventory at
// or below its alert threshold.
type StockAlertEvent struct {
	Type           string          `json:"type"`
	InventoryID    int             `json:"inventory_id"`
	OwnerID        int             `json:"owner_id"`
	SKU            string          `json:"sku"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	AlertThreshold decimal.Decimal `json:"alert_threshold"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, payload interface{}) error
}

// KafkaPublisher writes JSON-encoded events to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}
