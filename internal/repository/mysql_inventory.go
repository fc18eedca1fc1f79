package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

// MySQL error number for foreign key constraint violations on delete/update.
const mysqlErrRowIsReferenced = 1451

type MySQLInventoryRepository struct {
	db *sql.DB
}

func NewMySQLInventoryRepository(db *sql.DB) *MySQLInventoryRepository {
	return &MySQLInventoryRepository{db: db}
}

func (r *MySQLInventoryRepository) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `INSERT INTO inventories (product_format_id, retail_point_id, current_stock, alert_threshold, price_override, is_available, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		inv.ProductFormatID, inv.RetailPointID, inv.CurrentStock, inv.AlertThreshold, nullDecimal(inv.PriceOverride), inv.IsAvailable, inv.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	inv.ID = int(id)
	return nil
}

func (r *MySQLInventoryRepository) GetByID(ctx context.Context, id int) (*entity.Inventory, error) {
	query := `SELECT i.id, i.product_format_id, i.retail_point_id, i.current_stock, i.alert_threshold, i.price_override, i.is_available, i.updated_at,
		pf.id, pf.product_id, pf.name, pf.sku, pf.barcode, pf.unit_of_measure, pf.quantity_per_unit, pf.base_price, pf.is_active, pf.created_at, pf.updated_at
		FROM inventories i
		JOIN product_formats pf ON pf.id = i.product_format_id
		WHERE i.id = ?`

	inv := &entity.Inventory{ProductFormat: &entity.ProductFormat{}}
	var override decimal.NullDecimal
	pf := inv.ProductFormat
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&inv.ID, &inv.ProductFormatID, &inv.RetailPointID, &inv.CurrentStock, &inv.AlertThreshold, &override, &inv.IsAvailable, &inv.UpdatedAt,
		&pf.ID, &pf.ProductID, &pf.Name, &pf.SKU, &pf.Barcode, &pf.UnitOfMeasure, &pf.QuantityPerUnit, &pf.BasePrice, &pf.IsActive, &pf.CreatedAt, &pf.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if override.Valid {
		inv.PriceOverride = &override.Decimal
	}
	return inv, nil
}

func (r *MySQLInventoryRepository) Update(ctx context.Context, inv *entity.Inventory) error {
	query := `UPDATE inventories SET alert_threshold = ?, price_override = ?, is_available = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		inv.AlertThreshold, nullDecimal(inv.PriceOverride), inv.IsAvailable, inv.UpdatedAt, inv.ID)
	return err
}

func (r *MySQLInventoryRepository) UpdateStock(ctx context.Context, id int, stock decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE inventories SET current_stock = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, stock, updatedAt, id)
	return err
}

func (r *MySQLInventoryRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM inventories WHERE id = ?`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrRowIsReferenced {
			return ErrInventoryInUse
		}
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

func (r *MySQLInventoryRepository) List(ctx context.Context, f InventoryFilter) ([]entity.Inventory, error) {
	query := `SELECT i.id, i.product_format_id, i.retail_point_id, i.current_stock, i.alert_threshold, i.price_override, i.is_available, i.updated_at,
		pf.id, pf.product_id, pf.name, pf.sku, pf.barcode, pf.unit_of_measure, pf.quantity_per_unit, pf.base_price, pf.is_active, pf.created_at, pf.updated_at
		FROM inventories i
		JOIN product_formats pf ON pf.id = i.product_format_id
		WHERE 1=1`
	var args []interface{}

	if f.RetailPointID != nil {
		query += ` AND i.retail_point_id = ?`
		args = append(args, *f.RetailPointID)
	}
	if f.ManufacturerID != nil {
		query += ` AND pf.product_id IN (SELECT id FROM products WHERE manufacturer_id = ?)`
		args = append(args, *f.ManufacturerID)
	}
	if f.OwnerID != nil {
		query += ` AND i.retail_point_id IN (SELECT id FROM retail_points WHERE owner_id = ?)`
		args = append(args, *f.OwnerID)
	}
	if f.AvailableOnly {
		query += ` AND i.is_available = TRUE`
	}
	if f.InStockOnly {
		query += ` AND i.current_stock > 0`
	}
	query += ` ORDER BY i.id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []entity.Inventory
	for rows.Next() {
		inv := entity.Inventory{ProductFormat: &entity.ProductFormat{}}
		var override decimal.NullDecimal
		pf := inv.ProductFormat
		if err := rows.Scan(
			&inv.ID, &inv.ProductFormatID, &inv.RetailPointID, &inv.CurrentStock, &inv.AlertThreshold, &override, &inv.IsAvailable, &inv.UpdatedAt,
			&pf.ID, &pf.ProductID, &pf.Name, &pf.SKU, &pf.Barcode, &pf.UnitOfMeasure, &pf.QuantityPerUnit, &pf.BasePrice, &pf.IsActive, &pf.CreatedAt, &pf.UpdatedAt); err != nil {
			return nil, err
		}
		if override.Valid {
			inv.PriceOverride = &override.Decimal
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

func (r *MySQLInventoryRepository) CreateMovement(ctx context.Context, m *entity.StockMovement) error {
	query := `INSERT INTO stock_movements (inventory_id, movement_type, quantity, dest_inventory_id, reference, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		m.InventoryID, m.MovementType, m.Quantity, m.DestInventoryID, m.Reference, m.Notes, m.CreatedBy, m.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = int(id)
	return nil
}

func (r *MySQLInventoryRepository) ListMovements(ctx context.Context, inventoryID int) ([]entity.StockMovement, error) {
	query := `SELECT id, inventory_id, movement_type, quantity, dest_inventory_id, reference, notes, created_by, created_at
		FROM stock_movements WHERE inventory_id = ? ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, inventoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.MovementType, &m.Quantity, &m.DestInventoryID, &m.Reference, &m.Notes, &m.CreatedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
