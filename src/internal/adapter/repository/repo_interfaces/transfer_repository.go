package repo_interfaces

import (
	"context"

	"github.com/oakline/banking-ledger/src/internal/domain"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	GetByID(ctx context.Context, id string) (domain.Transfer, error)
	GetByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error)
	UpdateStatus(ctx context.Context, transferID string, status domain.TransferStatus) error
	// ProcessTransfer runs the atomic section: lock both accounts in ascending
	// id order, re-check the sender balance under lock, debit, credit, append
	// both ledger legs and mark the transfer completed. Either every effect is
	// committed or none is.
	ProcessTransfer(ctx context.Context, posting domain.TransferPosting) (domain.PostingResult, error)
}
