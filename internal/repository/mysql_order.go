package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

func (r *MySQLOrderRepository) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (user_id, retail_point_id, order_number, status, total_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		o.UserID, o.RetailPointID, o.OrderNumber, o.Status, o.TotalAmount, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = int(id)
	return nil
}

func (r *MySQLOrderRepository) AddItem(ctx context.Context, item *entity.OrderItem) error {
	query := `INSERT INTO order_items (order_id, inventory_id, quantity, unit_price, total_price) VALUES (?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		item.OrderID, item.InventoryID, item.Quantity, item.UnitPrice, item.TotalPrice)
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

func (r *MySQLOrderRepository) UpdateTotal(ctx context.Context, orderID int, total decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE orders SET total_amount = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, total, updatedAt, orderID)
	return err
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, orderID int, status string, updatedAt time.Time) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, status, updatedAt, orderID)
	return err
}

func (r *MySQLOrderRepository) GetByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT id, user_id, retail_point_id, order_number, status, total_amount, created_at, updated_at
		FROM orders WHERE id = ?`

	o := &entity.Order{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.RetailPointID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return o, nil
}

func (r *MySQLOrderRepository) List(ctx context.Context, f OrderFilter) ([]entity.Order, error) {
	query := `SELECT DISTINCT o.id, o.user_id, o.retail_point_id, o.order_number, o.status, o.total_amount, o.created_at, o.updated_at
		FROM orders o`
	var args []interface{}

	if f.SellerID != nil {
		query += ` JOIN order_items oi ON oi.order_id = o.id
			JOIN inventories i ON i.id = oi.inventory_id
			JOIN retail_points rp ON rp.id = i.retail_point_id`
	}
	query += ` WHERE 1=1`

	if f.UserID != nil {
		query += ` AND o.user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.SellerID != nil {
		query += ` AND rp.owner_id = ?`
		args = append(args, *f.SellerID)
	}
	if f.RetailPointID != nil {
		query += ` AND o.retail_point_id = ?`
		args = append(args, *f.RetailPointID)
	}
	if f.Status != "" {
		query += ` AND o.status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY o.id DESC`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.RetailPointID, &o.OrderNumber, &o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.listItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *MySQLOrderRepository) listItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, inventory_id, quantity, unit_price, total_price FROM order_items WHERE order_id = ? ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.InventoryID, &item.Quantity, &item.UnitPrice, &item.TotalPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
