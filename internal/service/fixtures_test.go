package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/events"
	"marketplace-backend/internal/repository"
)

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	mu     sync.Mutex
	keys   []string
	events []interface{}
}

func (p *capturingPublisher) Publish(ctx context.Context, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	p.events = append(p.events, payload)
	return nil
}

var _ events.Publisher = (*capturingPublisher)(nil)

// fixture wires every service against one in-memory store and seeds a buyer,
// a seller with a retail point, and a manufacturer with a priced format.
type fixture struct {
	store     *repository.MemoryStore
	publisher *capturingPublisher

	catalog      *CatalogService
	inventory    *InventoryService
	cart         *CartService
	order        *OrderService
	token        *TokenService
	notification *NotificationService
	dispute      *DisputeService

	buyer        entity.User
	seller       entity.User
	manufacturer entity.User
	retailPoint  entity.RetailPoint
	product      entity.Product
	format       entity.ProductFormat
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore()
	publisher := &capturingPublisher{}

	f := &fixture{store: store, publisher: publisher}
	f.catalog = NewCatalogService(store.Catalog(), store.Users())
	f.inventory = NewInventoryService(store.Inventories(), store.RetailPoints(), store.Users(), store, publisher, nil)
	f.cart = NewCartService(store.Carts(), store.Inventories())
	f.order = NewOrderService(store.Orders(), store.Carts(), store.Users(), f.inventory, store, publisher, nil)
	f.token = NewTokenService(store.TokenTransactions(), store.Users(), store)
	f.notification = NewNotificationService(store.Notifications())
	f.dispute = NewDisputeService(store.Disputes(), store.Orders())

	now := time.Now().UTC()

	f.buyer = entity.User{Username: "amina", UserType: entity.UserTypeIndividual, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, &f.buyer))

	f.seller = entity.User{Username: "moussa", UserType: entity.UserTypeRetailer, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, &f.seller))

	f.manufacturer = entity.User{Username: "sahelco", UserType: entity.UserTypeManufacturer, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, &f.manufacturer))

	f.retailPoint = entity.RetailPoint{OwnerID: f.seller.ID, Name: "Central Shop", RetailPointType: "SHOP", IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.RetailPoints().Create(ctx, &f.retailPoint))

	f.product = entity.Product{Name: "Millet Flour", ManufacturerID: f.manufacturer.ID, IsActive: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Catalog().CreateProduct(ctx, &f.product))

	f.format = entity.ProductFormat{
		ProductID:     f.product.ID,
		Name:          "1kg bag",
		SKU:           "MF-1KG",
		UnitOfMeasure: "kg",
		BasePrice:     decimal.RequireFromString("5.00"),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Catalog().CreateFormat(ctx, &f.format))

	return f
}

// addInventory seeds stock of the default format at the default retail point.
func (f *fixture) addInventory(t *testing.T, stock string) *entity.Inventory {
	t.Helper()
	inv := &entity.Inventory{
		ProductFormatID: f.format.ID,
		RetailPointID:   f.retailPoint.ID,
		CurrentStock:    decimal.RequireFromString(stock),
		IsAvailable:     true,
		UpdatedAt:       time.Now().UTC(),
	}
	require.NoError(t, f.store.Inventories().Create(context.Background(), inv))
	return inv
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
