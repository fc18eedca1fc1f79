package repository

import (
	"context"
	"database/sql"

	"marketplace-backend/internal/entity"
)

type MySQLTokenTransactionRepository struct {
	db *sql.DB
}

func NewMySQLTokenTransactionRepository(db *sql.DB) *MySQLTokenTransactionRepository {
	return &MySQLTokenTransactionRepository{db: db}
}

func (r *MySQLTokenTransactionRepository) Create(ctx context.Context, t *entity.TokenTransaction) error {
	query := `INSERT INTO token_transactions (user_id, transaction_type, amount, reference, created_at) VALUES (?, ?, ?, ?, ?)`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, t.UserID, t.TransactionType, t.Amount, t.Reference, t.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = int(id)
	return nil
}

func (r *MySQLTokenTransactionRepository) ListByUser(ctx context.Context, userID int) ([]entity.TokenTransaction, error) {
	query := `SELECT id, user_id, transaction_type, amount, reference, created_at
		FROM token_transactions WHERE user_id = ? ORDER BY id DESC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []entity.TokenTransaction
	for rows.Next() {
		var t entity.TokenTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.TransactionType, &t.Amount, &t.Reference, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}
