package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

type MySQLCartRepository struct {
	db *sql.DB
}

func NewMySQLCartRepository(db *sql.DB) *MySQLCartRepository {
	return &MySQLCartRepository{db: db}
}

func (r *MySQLCartRepository) GetOrCreateByUser(ctx context.Context, userID int, now time.Time) (*entity.Cart, error) {
	query := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = ?`

	cart := &entity.Cart{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	res, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO carts (user_id, created_at, updated_at) VALUES (?, ?, ?)`, userID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &entity.Cart{ID: int(id), UserID: userID, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *MySQLCartRepository) ListItems(ctx context.Context, cartID int) ([]entity.CartItem, error) {
	query := `SELECT ci.id, ci.cart_id, ci.inventory_id, ci.quantity, ci.added_at,
		i.id, i.product_format_id, i.retail_point_id, i.current_stock, i.alert_threshold, i.price_override, i.is_available, i.updated_at,
		pf.id, pf.product_id, pf.name, pf.sku, pf.barcode, pf.unit_of_measure, pf.quantity_per_unit, pf.base_price, pf.is_active, pf.created_at, pf.updated_at
		FROM cart_items ci
		JOIN inventories i ON i.id = ci.inventory_id
		JOIN product_formats pf ON pf.id = i.product_format_id
		WHERE ci.cart_id = ? ORDER BY ci.id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.CartItem
	for rows.Next() {
		item := entity.CartItem{Inventory: &entity.Inventory{ProductFormat: &entity.ProductFormat{}}}
		inv := item.Inventory
		pf := inv.ProductFormat
		var override decimal.NullDecimal
		if err := rows.Scan(
			&item.ID, &item.CartID, &item.InventoryID, &item.Quantity, &item.AddedAt,
			&inv.ID, &inv.ProductFormatID, &inv.RetailPointID, &inv.CurrentStock, &inv.AlertThreshold, &override, &inv.IsAvailable, &inv.UpdatedAt,
			&pf.ID, &pf.ProductID, &pf.Name, &pf.SKU, &pf.Barcode, &pf.UnitOfMeasure, &pf.QuantityPerUnit, &pf.BasePrice, &pf.IsActive, &pf.CreatedAt, &pf.UpdatedAt); err != nil {
			return nil, err
		}
		if override.Valid {
			inv.PriceOverride = &override.Decimal
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpsertItem relies on the (cart_id, inventory_id) unique key: adding the same
// inventory twice replaces the quantity.
func (r *MySQLCartRepository) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	query := `INSERT INTO cart_items (cart_id, inventory_id, quantity, added_at) VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), id = LAST_INSERT_ID(id)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, item.CartID, item.InventoryID, item.Quantity, item.AddedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = int(id)
	return nil
}

func (r *MySQLCartRepository) DeleteItem(ctx context.Context, cartID, itemID int) error {
	query := `DELETE FROM cart_items WHERE id = ? AND cart_id = ?`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, itemID, cartID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MySQLCartRepository) ClearItems(ctx context.Context, cartID int) error {
	query := `DELETE FROM cart_items WHERE cart_id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, cartID)
	return err
}
