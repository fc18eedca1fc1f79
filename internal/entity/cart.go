package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart holds a user's pending items. The row survives checkout; only the
// items are removed.
type Cart struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	Items       []CartItem      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CartItem is unique per (cart, inventory) pair; adding the same inventory
// again replaces the quantity.
type CartItem struct {
	ID          int             `json:"id"`
	CartID      int             `json:"cart_id"`
	InventoryID int             `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Inventory   *Inventory      `json:"inventory,omitempty"`
	AddedAt     time.Time       `json:"added_at"`
}
