package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oakline/banking-ledger/src/internal/domain"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, transactionType string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	const query = `
SELECT id,
       account_id,
       transfer_id,
       type,
       amount,
       balance_after,
       status,
       description,
       created_at
FROM transactions
WHERE account_id::text = $1
  AND ($2 = '' OR type = $2)
ORDER BY created_at DESC
LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, accountID, transactionType, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.Transaction
	for rows.Next() {
		var (
			entry      domain.Transaction
			transferID sql.NullString
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&transferID,
			&entry.Type,
			&entry.Amount,
			&entry.BalanceAfter,
			&entry.Status,
			&entry.Description,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if transferID.Valid {
			value := transferID.String
			entry.TransferID = &value
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return entries, nil
}
