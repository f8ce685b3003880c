package memory

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

// Per-port views over one shared Store so the three repositories observe a
// single consistent ledger, like three repositories over one database.

type AccountRepository struct {
	store *Store
}

func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	return r.store.Create(ctx, account)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return r.store.GetByID(ctx, id)
}

func (r *AccountRepository) DepositFunds(ctx context.Context, accountID string, amount decimal.Decimal, description string) (domain.Account, error) {
	return r.store.DepositFunds(ctx, accountID, amount, description)
}

type TransferRepository struct {
	store *Store
}

func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{store: store}
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	return r.store.CreateTransfer(ctx, transfer)
}

func (r *TransferRepository) GetByID(ctx context.Context, id string) (domain.Transfer, error) {
	return r.store.GetTransferByID(ctx, id)
}

func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	return r.store.GetTransferByIdempotencyKey(ctx, key)
}

func (r *TransferRepository) UpdateStatus(ctx context.Context, transferID string, status domain.TransferStatus) error {
	return r.store.UpdateTransferStatus(ctx, transferID, status)
}

func (r *TransferRepository) ProcessTransfer(ctx context.Context, posting domain.TransferPosting) (domain.PostingResult, error) {
	return r.store.ProcessTransfer(ctx, posting)
}

type TransactionRepository struct {
	store *Store
}

func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, transactionType string, limit int) ([]domain.Transaction, error) {
	return r.store.ListByAccount(ctx, accountID, transactionType, limit)
}
