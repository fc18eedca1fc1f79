package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketplace-backend/internal/entity"
)

type MySQLCatalogRepository struct {
	db *sql.DB
}

func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{db: db}
}

func (r *MySQLCatalogRepository) CreateCategory(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (name, description, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, c.Name, c.Description, c.ParentID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = int(id)
	return nil
}

func (r *MySQLCatalogRepository) ListCategories(ctx context.Context) ([]entity.Category, error) {
	query := `SELECT id, name, description, parent_id, created_at, updated_at FROM categories ORDER BY name`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ParentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *MySQLCatalogRepository) CreateProduct(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (name, description, category_id, manufacturer_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		p.Name, p.Description, p.CategoryID, p.ManufacturerID, p.IsActive, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = int(id)
	return nil
}

func (r *MySQLCatalogRepository) GetProductByID(ctx context.Context, id int) (*entity.Product, error) {
	query := `SELECT id, name, description, category_id, manufacturer_id, is_active, created_at, updated_at
		FROM products WHERE id = ?`

	p := &entity.Product{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.ManufacturerID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	formats, err := r.ListFormats(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Formats = formats
	return p, nil
}

func (r *MySQLCatalogRepository) ListProducts(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	query := `SELECT id, name, description, category_id, manufacturer_id, is_active, created_at, updated_at
		FROM products WHERE 1=1`
	var args []interface{}

	if f.ActiveOnly {
		query += ` AND is_active = TRUE`
	}
	if f.CategoryID != nil {
		query += ` AND category_id = ?`
		args = append(args, *f.CategoryID)
	}
	if f.ManufacturerID != nil {
		query += ` AND manufacturer_id = ?`
		args = append(args, *f.ManufacturerID)
	}
	query += ` ORDER BY id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CategoryID, &p.ManufacturerID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *MySQLCatalogRepository) CreateFormat(ctx context.Context, pf *entity.ProductFormat) error {
	query := `INSERT INTO product_formats (product_id, name, sku, barcode, unit_of_measure, quantity_per_unit, base_price, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		pf.ProductID, pf.Name, pf.SKU, pf.Barcode, pf.UnitOfMeasure, pf.QuantityPerUnit, pf.BasePrice, pf.IsActive, pf.CreatedAt, pf.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	pf.ID = int(id)
	return nil
}

func (r *MySQLCatalogRepository) GetFormatByID(ctx context.Context, id int) (*entity.ProductFormat, error) {
	query := `SELECT id, product_id, name, sku, barcode, unit_of_measure, quantity_per_unit, base_price, is_active, created_at, updated_at
		FROM product_formats WHERE id = ?`

	pf := &entity.ProductFormat{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&pf.ID, &pf.ProductID, &pf.Name, &pf.SKU, &pf.Barcode, &pf.UnitOfMeasure, &pf.QuantityPerUnit, &pf.BasePrice, &pf.IsActive, &pf.CreatedAt, &pf.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return pf, nil
}

func (r *MySQLCatalogRepository) UpdateFormat(ctx context.Context, pf *entity.ProductFormat) error {
	query := `UPDATE product_formats SET name = ?, sku = ?, barcode = ?, unit_of_measure = ?, quantity_per_unit = ?, base_price = ?, is_active = ?, updated_at = ?
		WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		pf.Name, pf.SKU, pf.Barcode, pf.UnitOfMeasure, pf.QuantityPerUnit, pf.BasePrice, pf.IsActive, pf.UpdatedAt, pf.ID)
	return err
}

func (r *MySQLCatalogRepository) DeleteFormat(ctx context.Context, id int) error {
	query := `DELETE FROM product_formats WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, id)
	return err
}

func (r *MySQLCatalogRepository) ListFormats(ctx context.Context, productID int) ([]entity.ProductFormat, error) {
	query := `SELECT id, product_id, name, sku, barcode, unit_of_measure, quantity_per_unit, base_price, is_active, created_at, updated_at
		FROM product_formats WHERE product_id = ? ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var formats []entity.ProductFormat
	for rows.Next() {
		var pf entity.ProductFormat
		if err := rows.Scan(&pf.ID, &pf.ProductID, &pf.Name, &pf.SKU, &pf.Barcode, &pf.UnitOfMeasure, &pf.QuantityPerUnit, &pf.BasePrice, &pf.IsActive, &pf.CreatedAt, &pf.UpdatedAt); err != nil {
			return nil, err
		}
		formats = append(formats, pf)
	}
	return formats, rows.Err()
}
