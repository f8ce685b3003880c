package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/oakline/banking-ledger/src/internal/logger"
	"github.com/shopspring/decimal"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	logger.Info("transfer repository create", logger.Fields{
		"reference":  transfer.Reference,
		"senderId":   transfer.SenderID,
		"receiverId": transfer.ReceiverID,
		"status":     transfer.Status,
	})

	const query = `
INSERT INTO transfers (
	reference,
	sender_id,
	receiver_id,
	amount,
	currency,
	description,
	idempotency_key,
	status
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, completed_at`

	var (
		id          string
		createdAt   time.Time
		completedAt sql.NullTime
	)

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.Reference,
		transfer.SenderID,
		transfer.ReceiverID,
		transfer.Amount,
		transfer.Currency,
		transfer.Description,
		transfer.IdempotencyKey,
		transfer.Status,
	).Scan(&id, &createdAt, &completedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Transfer{}, domain.ErrDuplicateRecord
		}
		logger.Error("transfer repository create failed", err, logger.Fields{
			"reference": transfer.Reference,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	transfer.ID = id
	transfer.CreatedAt = createdAt
	if completedAt.Valid {
		value := completedAt.Time
		transfer.CompletedAt = &value
	}

	return transfer, nil
}

func (r *TransferRepository) GetByID(ctx context.Context, id string) (domain.Transfer, error) {
	return r.getOne(ctx, `WHERE id::text = $1`, id)
}

func (r *TransferRepository) GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	return r.getOne(ctx, `WHERE idempotency_key = $1`, key)
}

func (r *TransferRepository) getOne(ctx context.Context, where string, arg string) (domain.Transfer, error) {
	query := `
SELECT id,
       reference,
       sender_id,
       receiver_id,
       amount,
       currency,
       description,
       idempotency_key,
       status,
       created_at,
       completed_at
FROM transfers ` + where

	var (
		transfer       domain.Transfer
		idempotencyKey sql.NullString
		completedAt    sql.NullTime
	)

	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&transfer.ID,
		&transfer.Reference,
		&transfer.SenderID,
		&transfer.ReceiverID,
		&transfer.Amount,
		&transfer.Currency,
		&transfer.Description,
		&idempotencyKey,
		&transfer.Status,
		&transfer.CreatedAt,
		&completedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transfer{}, domain.ErrRecordNotFound
		}
		return domain.Transfer{}, fmt.Errorf("get transfer: %w", err)
	}

	if idempotencyKey.Valid {
		value := idempotencyKey.String
		transfer.IdempotencyKey = &value
	}
	if completedAt.Valid {
		value := completedAt.Time
		transfer.CompletedAt = &value
	}

	return transfer, nil
}

func (r *TransferRepository) UpdateStatus(ctx context.Context, transferID string, status domain.TransferStatus) error {
	// The status predicate keeps terminal transfers terminal: a commit that
	// succeeded server-side but was reported as failed must not flip a
	// COMPLETED transfer to FAILED afterwards.
	const query = `
UPDATE transfers
SET status = $2::varchar,
    completed_at = CASE
        WHEN $2::varchar IN ('COMPLETED', 'FAILED') THEN NOW()
        ELSE completed_at
    END
WHERE id::text = $1
  AND status = 'PENDING'`

	result, err := r.db.ExecContext(ctx, query, transferID, status)
	if err != nil {
		logger.Error("transfer repository update status failed", err, logger.Fields{
			"transferId": transferID,
			"status":     status,
		})
		return fmt.Errorf("update transfer status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transfer status rows affected: %w", err)
	}
	if rows == 0 {
		var current domain.TransferStatus
		if scanErr := r.db.QueryRowContext(ctx, `SELECT status FROM transfers WHERE id::text = $1`, transferID).Scan(&current); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return fmt.Errorf("update transfer status: %w", scanErr)
		}
		// Terminal states never change again.
		return nil
	}

	return nil
}

// ProcessTransfer is the atomic section. Both account rows are locked with
// SELECT ... FOR UPDATE in ascending id order so two transfers moving funds in
// opposite directions between the same pair can never deadlock. The sender
// balance is re-checked under the lock before any mutation.
func (r *TransferRepository) ProcessTransfer(ctx context.Context, posting domain.TransferPosting) (domain.PostingResult, error) {
	logger.Info("transfer repository process transfer", logger.Fields{
		"transferId": posting.TransferID,
		"senderId":   posting.SenderID,
		"receiverId": posting.ReceiverID,
		"amount":     posting.Amount,
	})

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("transfer repository begin tx failed", err, nil)
		return domain.PostingResult{}, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	first, second := posting.SenderID, posting.ReceiverID
	if second < first {
		first, second = second, first
	}

	locked := make(map[string]lockedAccount, 2)
	for _, id := range []string{first, second} {
		var row lockedAccount
		row, err = lockAccount(ctx, tx, id)
		if err != nil {
			return domain.PostingResult{}, err
		}
		locked[id] = row
	}

	sender := locked[posting.SenderID]
	receiver := locked[posting.ReceiverID]

	if sender.status != domain.AccountStatusActive || receiver.status != domain.AccountStatusActive {
		err = domain.ErrAccountInactive
		return domain.PostingResult{}, err
	}
	if !strings.EqualFold(sender.currency, receiver.currency) {
		err = domain.ErrCurrencyMismatch
		return domain.PostingResult{}, err
	}
	if sender.balance.LessThan(posting.Amount) {
		err = domain.ErrInsufficientFunds
		return domain.PostingResult{}, err
	}

	senderBalance := sender.balance.Sub(posting.Amount)
	receiverBalance := receiver.balance.Add(posting.Amount)

	const updateBalanceQuery = `
UPDATE accounts
SET balance = $2::numeric,
    updated_at = NOW()
WHERE id::text = $1`

	if _, err = tx.ExecContext(ctx, updateBalanceQuery, posting.SenderID, senderBalance); err != nil {
		return domain.PostingResult{}, fmt.Errorf("debit sender: %w", err)
	}
	if _, err = tx.ExecContext(ctx, updateBalanceQuery, posting.ReceiverID, receiverBalance); err != nil {
		return domain.PostingResult{}, fmt.Errorf("credit receiver: %w", err)
	}

	const entryQuery = `
INSERT INTO transactions (account_id, transfer_id, type, amount, balance_after, status, description)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if _, err = tx.ExecContext(
		ctx,
		entryQuery,
		posting.SenderID,
		posting.TransferID,
		domain.TransactionTypeTransfer,
		posting.Amount.Neg(),
		senderBalance,
		domain.TransactionStatusCompleted,
		posting.Description,
	); err != nil {
		return domain.PostingResult{}, fmt.Errorf("append debit entry: %w", err)
	}
	if _, err = tx.ExecContext(
		ctx,
		entryQuery,
		posting.ReceiverID,
		posting.TransferID,
		domain.TransactionTypeTransfer,
		posting.Amount,
		receiverBalance,
		domain.TransactionStatusCompleted,
		posting.Description,
	); err != nil {
		return domain.PostingResult{}, fmt.Errorf("append credit entry: %w", err)
	}

	const completeQuery = `
UPDATE transfers
SET status = $2,
    completed_at = NOW()
WHERE id::text = $1
  AND status = 'PENDING'
RETURNING completed_at`

	var completedAt time.Time
	if err = tx.QueryRowContext(ctx, completeQuery, posting.TransferID, domain.TransferStatusCompleted).Scan(&completedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("transfer %s is not pending", posting.TransferID)
		}
		return domain.PostingResult{}, fmt.Errorf("complete transfer: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transfer repository commit tx failed", err, nil)
		return domain.PostingResult{}, fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("transfer repository process transfer success", logger.Fields{
		"transferId": posting.TransferID,
	})
	return domain.PostingResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
		CompletedAt:     completedAt,
	}, nil
}

type lockedAccount struct {
	balance  decimal.Decimal
	status   domain.AccountStatus
	currency string
}

func lockAccount(ctx context.Context, tx *sql.Tx, id string) (lockedAccount, error) {
	const query = `
SELECT balance, status, currency
FROM accounts
WHERE id::text = $1
FOR UPDATE`

	var row lockedAccount
	if err := tx.QueryRowContext(ctx, query, id).Scan(&row.balance, &row.status, &row.currency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return lockedAccount{}, domain.ErrAccountNotFound
		}
		return lockedAccount{}, fmt.Errorf("lock account %s: %w", id, err)
	}

	return row, nil
}
