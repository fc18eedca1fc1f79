package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types. ADJ sets the stock to an absolute value, TRF moves
// quantity between two inventories.
const (
	MovementIn       = "IN"
	MovementOut      = "OUT"
	MovementAdjust   = "ADJ"
	MovementTransfer = "TRF"
)

// Inventory tracks the stock of one product format at one retail point.
// CurrentStock always equals the fold of the inventory's movements applied in
// creation order.
type Inventory struct {
	ID              int              `json:"id"`
	ProductFormatID int              `json:"product_format_id"`
	RetailPointID   int              `json:"retail_point_id"`
	CurrentStock    decimal.Decimal  `json:"current_stock"`
	AlertThreshold  decimal.Decimal  `json:"alert_threshold"`
	PriceOverride   *decimal.Decimal `json:"price_override,omitempty"`
	IsAvailable     bool             `json:"is_available"`
	ProductFormat   *ProductFormat   `json:"product_format,omitempty"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// EffectivePrice is the unit price charged for this inventory: the override
// when set, otherwise the format's base price.
func (inv *Inventory) EffectivePrice() decimal.Decimal {
	if inv.PriceOverride != nil {
		return *inv.PriceOverride
	}
	if inv.ProductFormat != nil {
		return inv.ProductFormat.BasePrice
	}
	return decimal.Zero
}

// StockMovement is an append-only ledger entry. Rows are never updated or
// deleted once written.
type StockMovement struct {
	ID              int             `json:"id"`
	InventoryID     int             `json:"inventory_id"`
	MovementType    string          `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	DestInventoryID *int            `json:"dest_inventory_id,omitempty"`
	Reference       string          `json:"reference,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       *int            `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
