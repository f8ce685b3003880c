package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
)

// Transaction is one leg of a money movement. Amount is signed: negative for
// the debit leg, positive for the credit leg. A completed transfer always has
// exactly two rows whose amounts sum to zero.
type Transaction struct {
	ID           string
	AccountID    string
	TransferID   *string
	Type         TransactionType
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Status       TransactionStatus
	Description  string
	CreatedAt    time.Time
}
