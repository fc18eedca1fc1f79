package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

var (
	// ErrNotFound is returned when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInventoryInUse is returned when deleting an inventory that an order
	// item still references.
	ErrInventoryInUse = errors.New("inventory referenced by order items")
)

// TxManager runs fn inside one transaction. Repositories called with the
// returned context participate in that transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int) (*entity.User, error)
	UpdateBalance(ctx context.Context, id int, balance decimal.Decimal, updatedAt time.Time) error
}

type ProductFilter struct {
	CategoryID     *int
	ManufacturerID *int
	ActiveOnly     bool
}

type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *entity.Category) error
	ListCategories(ctx context.Context) ([]entity.Category, error)
	CreateProduct(ctx context.Context, p *entity.Product) error
	GetProductByID(ctx context.Context, id int) (*entity.Product, error)
	ListProducts(ctx context.Context, f ProductFilter) ([]entity.Product, error)
	CreateFormat(ctx context.Context, pf *entity.ProductFormat) error
	GetFormatByID(ctx context.Context, id int) (*entity.ProductFormat, error)
	UpdateFormat(ctx context.Context, pf *entity.ProductFormat) error
	DeleteFormat(ctx context.Context, id int) error
	ListFormats(ctx context.Context, productID int) ([]entity.ProductFormat, error)
}

type RetailPointRepository interface {
	Create(ctx context.Context, rp *entity.RetailPoint) error
	GetByID(ctx context.Context, id int) (*entity.RetailPoint, error)
	ListByOwner(ctx context.Context, ownerID int) ([]entity.RetailPoint, error)
}

// InventoryFilter scopes inventory listings. At most one of the ID fields is
// normally set; AvailableOnly/InStockOnly further narrow the result.
type InventoryFilter struct {
	RetailPointID  *int
	ManufacturerID *int
	OwnerID        *int
	AvailableOnly  bool
	InStockOnly    bool
}

type InventoryRepository interface {
	Create(ctx context.Context, inv *entity.Inventory) error
	// GetByID loads the inventory together with its product format.
	GetByID(ctx context.Context, id int) (*entity.Inventory, error)
	Update(ctx context.Context, inv *entity.Inventory) error
	UpdateStock(ctx context.Context, id int, stock decimal.Decimal, updatedAt time.Time) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, f InventoryFilter) ([]entity.Inventory, error)
	CreateMovement(ctx context.Context, m *entity.StockMovement) error
	ListMovements(ctx context.Context, inventoryID int) ([]entity.StockMovement, error)
}

type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID int, now time.Time) (*entity.Cart, error)
	// ListItems loads cart items with their inventories and product formats.
	ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error)
	UpsertItem(ctx context.Context, item *entity.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID int) error
	ClearItems(ctx context.Context, cartID int) error
}

type OrderFilter struct {
	UserID        *int
	SellerID      *int
	RetailPointID *int
	Status        string
}

type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	AddItem(ctx context.Context, item *entity.OrderItem) error
	UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal, updatedAt time.Time) error
	UpdateStatus(ctx context.Context, orderID int, status string, updatedAt time.Time) error
	// GetByID loads the order together with its items.
	GetByID(ctx context.Context, id int) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]entity.Order, error)
}

type TokenTransactionRepository interface {
	Create(ctx context.Context, t *entity.TokenTransaction) error
	ListByUser(ctx context.Context, userID int) ([]entity.TokenTransaction, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	ListByUser(ctx context.Context, userID int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id, userID int) error
}

type DisputeFilter struct {
	ParticipantID *int
	Status        string
	DisputeType   string
}

type DisputeRepository interface {
	Create(ctx context.Context, d *entity.Dispute) error
	// GetByID loads the dispute together with its messages in chronological order.
	GetByID(ctx context.Context, id int) (*entity.Dispute, error)
	Update(ctx context.Context, d *entity.Dispute) error
	List(ctx context.Context, f DisputeFilter) ([]entity.Dispute, error)
	AddMessage(ctx context.Context, m *entity.DisputeMessage) error
}
