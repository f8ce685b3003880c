package repo_interfaces

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/domain"
)

// TransactionRepository is read-only: ledger rows are written exclusively by
// the atomic posting paths.
type TransactionRepository interface {
	ListByAccount(ctx context.Context, accountID string, transactionType string, limit int) ([]domain.Transaction, error)
}
