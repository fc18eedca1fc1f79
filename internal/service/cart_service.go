package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

type CartService struct {
	carts       repository.CartRepository
	inventories repository.InventoryRepository
}

func NewCartService(carts repository.CartRepository, inventories repository.InventoryRepository) *CartService {
	return &CartService{carts: carts, inventories: inventories}
}

// Get returns the user's cart with items and computed totals, creating the
// cart row on first access.
func (s *CartService) Get(ctx context.Context, userID int) (*entity.Cart, error) {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	items, err := s.carts.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items
	cart.TotalItems = len(items)
	for _, item := range items {
		cart.TotalAmount = cart.TotalAmount.Add(item.Quantity.Mul(item.Inventory.EffectivePrice()))
	}
	return cart, nil
}

// AddItem puts an inventory in the cart. Adding the same inventory again
// replaces the quantity ((cart, inventory) is unique).
func (s *CartService) AddItem(ctx context.Context, userID, inventoryID int, quantity decimal.Decimal) (*entity.CartItem, error) {
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	inv, err := s.inventories.GetByID(ctx, inventoryID)
	if err != nil {
		return nil, err
	}
	if !inv.IsAvailable {
		return nil, ErrInventoryUnavailable
	}

	now := time.Now().UTC()
	cart, err := s.carts.GetOrCreateByUser(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	item := &entity.CartItem{
		CartID:      cart.ID,
		InventoryID: inventoryID,
		Quantity:    quantity,
		AddedAt:     now,
	}
	if err := s.carts.UpsertItem(ctx, item); err != nil {
		return nil, err
	}
	item.Inventory = inv
	return item, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int) error {
	cart, err := s.carts.GetOrCreateByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	return s.carts.DeleteItem(ctx, cart.ID, itemID)
}
