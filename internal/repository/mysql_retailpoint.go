package repository

import (
	"context"
	"database/sql"
	"errors"

	"marketplace-backend/internal/entity"
)

type MySQLRetailPointRepository struct {
	db *sql.DB
}

func NewMySQLRetailPointRepository(db *sql.DB) *MySQLRetailPointRepository {
	return &MySQLRetailPointRepository{db: db}
}

func (r *MySQLRetailPointRepository) Create(ctx context.Context, rp *entity.RetailPoint) error {
	query := `INSERT INTO retail_points (owner_id, name, description, retail_point_type, address_id, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		rp.OwnerID, rp.Name, rp.Description, rp.RetailPointType, rp.AddressID, rp.IsActive, rp.CreatedAt, rp.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rp.ID = int(id)
	return nil
}

func (r *MySQLRetailPointRepository) GetByID(ctx context.Context, id int) (*entity.RetailPoint, error) {
	query := `SELECT id, owner_id, name, description, retail_point_type, address_id, is_active, created_at, updated_at
		FROM retail_points WHERE id = ?`

	rp := &entity.RetailPoint{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&rp.ID, &rp.OwnerID, &rp.Name, &rp.Description, &rp.RetailPointType, &rp.AddressID, &rp.IsActive, &rp.CreatedAt, &rp.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rp, nil
}

func (r *MySQLRetailPointRepository) ListByOwner(ctx context.Context, ownerID int) ([]entity.RetailPoint, error) {
	query := `SELECT id, owner_id, name, description, retail_point_type, address_id, is_active, created_at, updated_at
		FROM retail_points WHERE owner_id = ? ORDER BY id`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.RetailPoint
	for rows.Next() {
		var rp entity.RetailPoint
		if err := rows.Scan(&rp.ID, &rp.OwnerID, &rp.Name, &rp.Description, &rp.RetailPointType, &rp.AddressID, &rp.IsActive, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}
