package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/oakline/banking-ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	const query = `
INSERT INTO accounts (
	customer_id,
	account_number,
	name,
	currency,
	balance,
	status
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at, updated_at`

	var (
		id        string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.AccountNumber,
		account.Name,
		account.Currency,
		account.Balance,
		account.Status,
	).Scan(&id, &createdAt, &updatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Account{}, domain.ErrDuplicateRecord
		}
		return domain.Account{}, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	account.CreatedAt = createdAt
	account.UpdatedAt = updatedAt

	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (domain.Account, error) {
	const query = `
SELECT id,
       customer_id,
       account_number,
       name,
       currency,
       balance,
       status,
       created_at,
       updated_at
FROM accounts
WHERE id::text = $1`

	var account domain.Account
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Name,
		&account.Currency,
		&account.Balance,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) DepositFunds(ctx context.Context, accountID string, amount decimal.Decimal, description string) (domain.Account, error) {
	logger.Info("account repository deposit funds", logger.Fields{
		"accountId": accountID,
		"amount":    amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin deposit transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const creditQuery = `
UPDATE accounts
SET balance = balance + $2::numeric,
    updated_at = NOW()
WHERE id::text = $1
  AND status = 'ACTIVE'
RETURNING id, customer_id, account_number, name, currency, balance, status, created_at, updated_at`

	var account domain.Account
	if err = tx.QueryRowContext(ctx, creditQuery, accountID, amount).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Name,
		&account.Currency,
		&account.Balance,
		&account.Status,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// No row matched: either the account is missing or it is not active.
			var status domain.AccountStatus
			statusErr := tx.QueryRowContext(ctx, `SELECT status FROM accounts WHERE id::text = $1`, accountID).Scan(&status)
			switch {
			case statusErr == nil:
				err = domain.ErrAccountInactive
			default:
				err = domain.ErrRecordNotFound
			}
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("credit account: %w", err)
	}

	const entryQuery = `
INSERT INTO transactions (account_id, transfer_id, type, amount, balance_after, status, description)
VALUES ($1, NULL, $2, $3, $4, $5, $6)`

	if _, err = tx.ExecContext(
		ctx,
		entryQuery,
		account.ID,
		domain.TransactionTypeDeposit,
		amount,
		account.Balance,
		domain.TransactionStatusCompleted,
		description,
	); err != nil {
		return domain.Account{}, fmt.Errorf("append deposit entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit deposit transaction: %w", err)
	}

	logger.Info("account repository deposit funds success", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance,
	})
	return account, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == "23505"
	}
	return false
}
