package service

import (
	"context"
	"fmt"
	"time"

	"marketplace-backend/internal/entity"
	"marketplace-backend/internal/repository"
)

// TokenService manages user token balances. The balance update and the
// transaction row are written atomically.
type TokenService struct {
	transactions repository.TokenTransactionRepository
	users        repository.UserRepository
	txm          repository.TxManager
}

func NewTokenService(transactions repository.TokenTransactionRepository, users repository.UserRepository, txm repository.TxManager) *TokenService {
	return &TokenService{transactions: transactions, users: users, txm: txm}
}

func (s *TokenService) CreateTransaction(ctx context.Context, userID int, t *entity.TokenTransaction) (*entity.TokenTransaction, error) {
	if !t.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	now := time.Now().UTC()
	t.UserID = userID
	t.CreatedAt = now

	err := s.txm.WithTransaction(ctx, func(ctx context.Context) error {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		balance := user.TokenBalance
		switch t.TransactionType {
		case entity.TransactionDeposit, entity.TransactionRefund:
			balance = balance.Add(t.Amount)
		case entity.TransactionWithdrawal, entity.TransactionOrderPayment:
			if t.Amount.GreaterThan(balance) {
				return ErrInsufficientBalance
			}
			balance = balance.Sub(t.Amount)
		default:
			return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidInput, t.TransactionType)
		}

		if err := s.users.UpdateBalance(ctx, userID, balance, now); err != nil {
			return err
		}
		return s.transactions.Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TokenService) ListForUser(ctx context.Context, userID int) ([]entity.TokenTransaction, error) {
	return s.transactions.ListByUser(ctx, userID)
}
