package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
)

const inventoryCacheTTL = time.Minute

// InventoryService owns the stock ledger: every stock change goes through a
// StockMovement, and creating a movement folds it into the inventory's
// current_stock in the same transaction.
type InventoryService struct {
	inventories  repository.InventoryRepository
	retailPoints repository.RetailPointRepository
	users        repository.UserRepository
	txm          repository.TxManager
	publisher    events.Publisher
	rdb          *redis.Client
}

func NewInventoryService(
	inventories repository.InventoryRepository,
	retailPoints repository.RetailPointRepository,
	users repository.UserRepository,
	txm repository.TxManager,
	publisher events.Publisher,
	rdb *redis.Client,
) *InventoryService {
	return &InventoryService{
		inventories:  inventories,
		retailPoints: retailPoints,
		users:        users,
		txm:          txm,
		publisher:    publisher,
		rdb:          rdb,
	}
}

// RecordMovement validates and appends a stock movement, folding it into the
// inventory balance atomically. The insufficient-stock rule is enforced here
// for every caller, checkout included.
func (s *InventoryService) RecordMovement(ctx context.Context, m *entity.StockMovement) (*entity.StockMovement, error) {
	if err := validateMovement(m); err != nil {
		return nil, err
	}

	m.CreatedAt = time.Now().UTC()

	var updated *entity.Inventory
	err := s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.applyMovement(ctx, m)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.refreshCache(ctx, updated)
	s.maybeStockAlert(ctx, m.MovementType, updated)
	return m, nil
}

// applyMovement appends the movement row and updates the inventory balance.
// It must run inside a transaction; callers that batch several movements
// (checkout) call it directly within their own transaction.
func (s *InventoryService) applyMovement(ctx context.Context, m *entity.StockMovement) (*entity.Inventory, error) {
	inv, err := s.inventories.GetByID(ctx, m.InventoryID)
	if err != nil {
		return nil, err
	}

	newStock := inv.CurrentStock
	switch m.MovementType {
	case entity.MovementIn:
		newStock = newStock.Add(m.Quantity)
	case entity.MovementOut:
		if m.Quantity.GreaterThan(newStock) {
			return nil, ErrInsufficientStock
		}
		newStock = newStock.Sub(m.Quantity)
	case entity.MovementAdjust:
		newStock = m.Quantity
	case entity.MovementTransfer:
		if m.DestInventoryID == nil {
			return nil, fmt.Errorf("%w: transfer requires a destination inventory", ErrInvalidInput)
		}
		if m.Quantity.GreaterThan(newStock) {
			return nil, ErrInsufficientStock
		}
		dest, err := s.inventories.GetByID(ctx, *m.DestInventoryID)
		if err != nil {
			return nil, err
		}
		if err := s.inventories.UpdateStock(ctx, dest.ID, dest.CurrentStock.Add(m.Quantity), m.CreatedAt); err != nil {
			return nil, err
		}
		newStock = newStock.Sub(m.Quantity)
	}

	if err := s.inventories.CreateMovement(ctx, m); err != nil {
		return nil, err
	}
	if err := s.inventories.UpdateStock(ctx, inv.ID, newStock, m.CreatedAt); err != nil {
		return nil, err
	}

	inv.CurrentStock = newStock
	inv.UpdatedAt = m.CreatedAt
	return inv, nil
}

func validateMovement(m *entity.StockMovement) error {
	switch m.MovementType {
	case entity.MovementIn, entity.MovementOut, entity.MovementTransfer:
		if !m.Quantity.IsPositive() {
			return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
		}
		if m.MovementType == entity.MovementTransfer && m.DestInventoryID != nil && *m.DestInventoryID == m.InventoryID {
			return fmt.Errorf("%w: transfer destination must differ from the source", ErrInvalidInput)
		}
	case entity.MovementAdjust:
		if m.Quantity.IsNegative() {
			return fmt.Errorf("%w: adjusted stock cannot be negative", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown movement type %q", ErrInvalidInput, m.MovementType)
	}
	return nil
}

// maybeStockAlert publishes a stock alert when an outgoing movement leaves
// the inventory at or below its threshold. Called after the transaction
// committed.
func (s *InventoryService) maybeStockAlert(ctx context.Context, movementType string, inv *entity.Inventory) {
	if s.publisher == nil {
		return
	}
	if movementType != entity.MovementOut && movementType != entity.MovementTransfer {
		return
	}
	if inv.CurrentStock.GreaterThan(inv.AlertThreshold) {
		return
	}

	rp, err := s.retailPoints.GetByID(ctx, inv.RetailPointID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error loading retail point %d for stock alert", inv.RetailPointID)
		return
	}

	sku := ""
	if inv.ProductFormat != nil {
		sku = inv.ProductFormat.SKU
	}
	ev := events.StockAlertEvent{
		Type:           events.TypeStockAlert,
		InventoryID:    inv.ID,
		OwnerID:        rp.OwnerID,
		SKU:            sku,
		CurrentStock:   inv.CurrentStock,
		AlertThreshold: inv.AlertThreshold,
	}
	key := fmt.Sprintf("%s.%d", events.TypeStockAlert, inv.ID)
	if err := s.publisher.Publish(ctx, key, ev); err != nil {
		logger.Error().Err(err).Msgf("Error publishing stock alert for inventory %d", inv.ID)
	}
}

func (s *InventoryService) ListMovements(ctx context.Context, inventoryID int) ([]entity.StockMovement, error) {
	return s.inventories.ListMovements(ctx, inventoryID)
}

// Create registers stock tracking for a product format at one of the caller's
// retail points.
func (s *InventoryService) Create(ctx context.Context, userID int, inv *entity.Inventory) (*entity.Inventory, error) {
	rp, err := s.retailPoints.GetByID(ctx, inv.RetailPointID)
	if err != nil {
		return nil, err
	}
	if rp.OwnerID != userID {
		return nil, ErrPermissionDenied
	}

	inv.UpdatedAt = time.Now().UTC()
	if err := s.inventories.Create(ctx, inv); err != nil {
		return nil, err
	}
	return s.inventories.GetByID(ctx, inv.ID)
}

// GetByID reads through the Redis cache when one is configured.
func (s *InventoryService) GetByID(ctx context.Context, id int) (*entity.Inventory, error) {
	if cached := s.fromCache(ctx, id); cached != nil {
		return cached, nil
	}

	inv, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.refreshCache(ctx, inv)
	return inv, nil
}

func (s *InventoryService) Update(ctx context.Context, userID int, inv *entity.Inventory) (*entity.Inventory, error) {
	current, err := s.inventories.GetByID(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	rp, err := s.retailPoints.GetByID(ctx, current.RetailPointID)
	if err != nil {
		return nil, err
	}
	if rp.OwnerID != userID {
		return nil, ErrPermissionDenied
	}

	inv.UpdatedAt = time.Now().UTC()
	if err := s.inventories.Update(ctx, inv); err != nil {
		return nil, err
	}

	updated, err := s.inventories.GetByID(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	s.refreshCache(ctx, updated)
	return updated, nil
}

// Delete removes an inventory. Inventories referenced by order items are
// protected and cannot be deleted.
func (s *InventoryService) Delete(ctx context.Context, userID, id int) error {
	inv, err := s.inventories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	rp, err := s.retailPoints.GetByID(ctx, inv.RetailPointID)
	if err != nil {
		return err
	}
	if rp.OwnerID != userID {
		return ErrPermissionDenied
	}

	if err := s.inventories.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCache(ctx, id)
	return nil
}

// ListForUser scopes the inventory listing by user type: manufacturers see
// their products everywhere, sellers see their own retail points, everyone
// else sees available stock only.
func (s *InventoryService) ListForUser(ctx context.Context, userID int) ([]entity.Inventory, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	f := repository.InventoryFilter{}
	switch {
	case user.UserType == entity.UserTypeManufacturer:
		f.ManufacturerID = &userID
	case user.IsSeller():
		f.OwnerID = &userID
	default:
		f.AvailableOnly = true
		f.InStockOnly = true
	}
	return s.inventories.List(ctx, f)
}

// CreateRetailPoint registers a selling location for a seller account.
func (s *InventoryService) CreateRetailPoint(ctx context.Context, userID int, rp *entity.RetailPoint) (*entity.RetailPoint, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsSeller() {
		return nil, ErrPermissionDenied
	}

	now := time.Now().UTC()
	rp.OwnerID = userID
	rp.IsActive = true
	rp.CreatedAt = now
	rp.UpdatedAt = now
	if err := s.retailPoints.Create(ctx, rp); err != nil {
		return nil, err
	}
	return rp, nil
}

func (s *InventoryService) ListRetailPoints(ctx context.Context, ownerID int) ([]entity.RetailPoint, error) {
	return s.retailPoints.ListByOwner(ctx, ownerID)
}

func (s *InventoryService) ListByRetailPoint(ctx context.Context, retailPointID int) ([]entity.Inventory, error) {
	return s.inventories.List(ctx, repository.InventoryFilter{
		RetailPointID: &retailPointID,
		AvailableOnly: true,
	})
}

func inventoryCacheKey(id int) string { return fmt.Sprintf("inventory:%d", id) }

func (s *InventoryService) fromCache(ctx context.Context, id int) *entity.Inventory {
	if s.rdb == nil {
		return nil
	}

	val, err := s.rdb.Get(ctx, inventoryCacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error reading inventory %d from cache", id)
		}
		return nil
	}

	var inv entity.Inventory
	if err := json.Unmarshal([]byte(val), &inv); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cached inventory %d", id)
		return nil
	}
	return &inv
}

func (s *InventoryService) refreshCache(ctx context.Context, inv *entity.Inventory) {
	if s.rdb == nil {
		return
	}

	val, err := json.Marshal(inv)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling inventory %d for cache", inv.ID)
		return
	}
	if err := s.rdb.Set(ctx, inventoryCacheKey(inv.ID), val, inventoryCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error caching inventory %d", inv.ID)
	}
}

func (s *InventoryService) dropCache(ctx context.Context, id int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, inventoryCacheKey(id)).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error dropping inventory %d from cache", id)
	}
}
