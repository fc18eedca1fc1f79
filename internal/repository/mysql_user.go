package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"marketplace-backend/internal/entity"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

func (r *MySQLUserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `INSERT INTO users (username, email, user_type, phone_number, is_verified, token_balance, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query,
		u.Username, u.Email, u.UserType, u.PhoneNumber, u.IsVerified, u.TokenBalance, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = int(id)
	return nil
}

func (r *MySQLUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT id, username, email, user_type, phone_number, is_verified, token_balance, created_at, updated_at
		FROM users WHERE id = ?`

	u := &entity.User{}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.UserType, &u.PhoneNumber, &u.IsVerified, &u.TokenBalance, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *MySQLUserRepository) UpdateBalance(ctx context.Context, id int, balance decimal.Decimal, updatedAt time.Time) error {
	query := `UPDATE users SET token_balance = ?, updated_at = ? WHERE id = ?`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, balance, updatedAt, id)
	return err
}
