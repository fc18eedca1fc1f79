package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionDeposit      = "DEPOSIT"
	TransactionWithdrawal   = "WITHDRAWAL"
	TransactionOrderPayment = "ORDER_PAYMENT"
	TransactionRefund       = "REFUND"
)

// TokenTransaction records a change to a user's token balance. The balance
// update and the row are written in the same transaction.
type TokenTransaction struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
