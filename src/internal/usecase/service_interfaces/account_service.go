package service_interfaces

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error)
	GetBalance(ctx context.Context, accountID string) (commons.Response[models.BalanceResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.AccountResponse], error)
	ListTransactions(ctx context.Context, accountID string, transactionType string, limit int) (commons.Response[[]models.TransactionResponse], error)
}
