package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ParentID    *int      `json:"parent_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	CategoryID     *int            `json:"category_id,omitempty"`
	ManufacturerID int             `json:"manufacturer_id"`
	IsActive       bool            `json:"is_active"`
	Formats        []ProductFormat `json:"formats,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductFormat is one sellable unit of a product, e.g. "Pack of 6" or "1L".
type ProductFormat struct {
	ID              int             `json:"id"`
	ProductID       int             `json:"product_id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode,omitempty"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	QuantityPerUnit decimal.Decimal `json:"quantity_per_unit"`
	BasePrice       decimal.Decimal `json:"base_price"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type RetailPoint struct {
	ID              int       `json:"id"`
	OwnerID         int       `json:"owner_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	RetailPointType string    `json:"retail_point_type"`
	AddressID       int       `json:"address_id"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
