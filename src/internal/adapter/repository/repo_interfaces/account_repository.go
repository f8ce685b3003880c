package repo_interfaces

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepository interface {
	Create(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id string) (domain.Account, error)
	// DepositFunds credits a single account and appends the deposit ledger row
	// as one atomic unit.
	DepositFunds(ctx context.Context, accountID string, amount decimal.Decimal, description string) (domain.Account, error)
}
