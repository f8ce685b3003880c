package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferPosting is the input to the atomic section: debit sender, credit
// receiver, append both ledger legs and complete the transfer as one unit.
type TransferPosting struct {
	TransferID  string
	SenderID    string
	ReceiverID  string
	Amount      decimal.Decimal
	Currency    string
	Description string
}

// PostingResult carries the balances observed immediately after commit.
type PostingResult struct {
	SenderBalance   decimal.Decimal
	ReceiverBalance decimal.Decimal
	CompletedAt     time.Time
}
