package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
)

// OrderService implements checkout and order lifecycle. Checkout drains the
// user's cart into a new order inside one transaction.
type OrderService struct {
	orders    repository.OrderRepository
	carts     repository.CartRepository
	users     repository.UserRepository
	inventory *InventoryService
	txm       repository.TxManager
	publisher events.Publisher
	rdb       *redis.Client
}

func NewOrderService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	users repository.UserRepository,
	inventory *InventoryService,
	txm repository.TxManager,
	publisher events.Publisher,
	rdb *redis.Client,
) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		users:     users,
		inventory: inventory,
		txm:       txm,
		publisher: publisher,
		rdb:       rdb,
	}
}

// Checkout turns the user's cart into a PENDING order. Per cart item it
// snapshots the effective unit price, appends an OUT stock movement (folded
// into the inventory balance), and accumulates the order total; the cart is
// emptied at the end. Everything happens in one transaction: a failure on any
// item leaves cart, inventories and ledger untouched.
func (s *OrderService) Checkout(ctx context.Context, userID int, idempotentKey string, retailPointID *int) (*entity.Order, error) {
	if idempotentKey != "" {
		ok, err := s.reserveIdempotentKey(ctx, idempotentKey)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrIdempotentReplay
		}
	}

	now := time.Now().UTC()
	cart, err := s.carts.GetOrCreateByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var (
		order   *entity.Order
		touched []*entity.Inventory
	)
	err = s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		items, err := s.carts.ListItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		order = &entity.Order{
			UserID:        userID,
			RetailPointID: retailPointID,
			OrderNumber:   newOrderNumber(),
			Status:        entity.OrderStatusPending,
			TotalAmount:   decimal.Zero,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}

		total := decimal.Zero
		for _, item := range items {
			unitPrice := item.Inventory.EffectivePrice()
			orderItem := entity.OrderItem{
				OrderID:     order.ID,
				InventoryID: item.InventoryID,
				Quantity:    item.Quantity,
				UnitPrice:   unitPrice,
				TotalPrice:  item.Quantity.Mul(unitPrice),
			}
			if err := s.orders.AddItem(ctx, &orderItem); err != nil {
				return err
			}

			createdBy := userID
			inv, err := s.inventory.applyMovement(ctx, &entity.StockMovement{
				InventoryID:  item.InventoryID,
				MovementType: entity.MovementOut,
				Quantity:     item.Quantity,
				Reference:    fmt.Sprintf("Order #%s", order.OrderNumber),
				CreatedBy:    &createdBy,
				CreatedAt:    now,
			})
			if err != nil {
				return err
			}
			touched = append(touched, inv)

			order.Items = append(order.Items, orderItem)
			total = total.Add(orderItem.TotalPrice)
		}

		if err := s.orders.UpdateTotal(ctx, order.ID, total, now); err != nil {
			return err
		}
		order.TotalAmount = total

		return s.carts.ClearItems(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	for _, inv := range touched {
		s.inventory.refreshCache(ctx, inv)
		s.inventory.maybeStockAlert(ctx, entity.MovementOut, inv)
	}
	s.publishOrderEvent(ctx, events.TypeOrderCreated, order, "")

	return order, nil
}

// statusTransitions lists the allowed next statuses per current status.
// DELIVERED and CANCELLED are terminal.
var statusTransitions = map[string][]string{
	entity.OrderStatusDraft:      {entity.OrderStatusPending, entity.OrderStatusCancelled},
	entity.OrderStatusPending:    {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed:  {entity.OrderStatusProcessing, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusShipped},
	entity.OrderStatusShipped:    {entity.OrderStatusDelivered},
}

// TransitionStatus moves an order to the next status and returns the previous
// one alongside the updated order. The status-changed event is published here,
// explicitly, after the write.
func (s *OrderService) TransitionStatus(ctx context.Context, userID, orderID int, next string) (string, *entity.Order, error) {
	order, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return "", nil, err
	}

	previous := order.Status
	if !transitionAllowed(previous, next) {
		return "", nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, previous, next)
	}

	now := time.Now().UTC()
	if err := s.orders.UpdateStatus(ctx, orderID, next, now); err != nil {
		return "", nil, err
	}
	order.Status = next
	order.UpdatedAt = now

	s.publishOrderEvent(ctx, events.TypeOrderStatusChanged, order, previous)
	return previous, order, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GetForUser loads an order the user may see: their own, or one containing
// items sold through their retail points.
func (s *OrderService) GetForUser(ctx context.Context, userID, orderID int) (*entity.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == userID {
		return order, nil
	}

	sellerID := userID
	sold, err := s.orders.List(ctx, repository.OrderFilter{SellerID: &sellerID})
	if err != nil {
		return nil, err
	}
	for i := range sold {
		if sold[i].ID == orderID {
			return order, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ListForUser returns the orders visible to the user: sellers see orders
// placed against their retail points, buyers see their own.
func (s *OrderService) ListForUser(ctx context.Context, userID int, status string) ([]entity.Order, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := repository.OrderFilter{Status: status}
	if user.IsSeller() {
		f.SellerID = &user.ID
	} else {
		f.UserID = &user.ID
	}
	return s.orders.List(ctx, f)
}

func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order, previous string) {
	if s.publisher == nil {
		return
	}

	ev := events.OrderEvent{
		Type:           eventType,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		UserID:         order.UserID,
		Status:         order.Status,
		PreviousStatus: previous,
		TotalAmount:    order.TotalAmount,
	}
	key := fmt.Sprintf("%s.%d", eventType, order.ID)
	if err := s.publisher.Publish(ctx, key, ev); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s event for order %d", eventType, order.ID)
	}
}

// reserveIdempotentKey claims the checkout key in Redis for 24 hours. A key
// that is already present means a duplicate request.
func (s *OrderService) reserveIdempotentKey(ctx context.Context, key string) (bool, error) {
	if s.rdb == nil {
		return true, nil
	}

	redisKey := fmt.Sprintf("idempotent-key:%s", key)
	ok, err := s.rdb.SetNX(ctx, redisKey, "exists", 24*time.Hour).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return ok, nil
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return "ORD-" + id[:12]
}
