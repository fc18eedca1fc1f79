package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"marketplace-backend/internal/events"
	"marketplace-backend/internal/service"
)

// Consumer turns order and stock events into notification rows.
type Consumer struct {
	reader          *kafka.Reader
	notificationSvc *service.NotificationService
}

func NewConsumer(reader *kafka.Reader, notificationSvc *service.NotificationService) *Consumer {
	return &Consumer{reader: reader, notificationSvc: notificationSvc}
}

// Run reads messages until ctx is cancelled.
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Error().Msgf("Error reading message: %v", err)
			continue
		}

		c.processMessage(ctx, msg)
	}
}

// processMessage dispatches on the event type prefix of the message key,
// e.g. "order.status_changed.42" or "stock.alert.7".
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	key := string(msg.Key)

	switch {
	case strings.HasPrefix(key, events.TypeOrderStatusChanged):
		var ev events.OrderEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Error().Msgf("Error unmarshalling order event: %v", err)
			return
		}
		if err := c.notificationSvc.HandleOrderStatusChanged(ctx, ev); err != nil {
			log.Error().Msgf("Error handling status change for order %d: %v", ev.OrderID, err)
		}
	case strings.HasPrefix(key, events.TypeStockAlert):
		var ev events.StockAlertEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			log.Error().Msgf("Error unmarshalling stock alert: %v", err)
			return
		}
		if err := c.notificationSvc.HandleStockAlert(ctx, ev); err != nil {
			log.Error().Msgf("Error handling stock alert for inventory %d: %v", ev.InventoryID, err)
		}
	case strings.HasPrefix(key, events.TypeOrderCreated):
		// Creation is acknowledged to the buyer synchronously, nothing to do.
	default:
		log.Error().Msgf("Unknown event key: %s", key)
	}
}
