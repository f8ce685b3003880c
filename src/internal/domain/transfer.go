package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "PENDING"
	TransferStatusCompleted TransferStatus = "COMPLETED"
	TransferStatusFailed    TransferStatus = "FAILED"
)

// Transfer moves funds between two accounts of the same currency. Status only
// moves PENDING -> COMPLETED or PENDING -> FAILED and is terminal afterwards.
type Transfer struct {
	ID             string
	Reference      string
	SenderID       string
	ReceiverID     string
	Amount         decimal.Decimal
	Currency       string
	Description    string
	IdempotencyKey *string
	Status         TransferStatus
	CreatedAt      time.Time
	CompletedAt    *time.Time
}
