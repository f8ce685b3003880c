package models

import (
	"fmt"
	"strings"

	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

// TransferRequest is the typed boundary the gateway hands to the engine.
// Amount is a decimal string with exactly two fraction digits; nothing with an
// invalid shape ever reaches the atomic section.
type TransferRequest struct {
	SenderAccountID   string `json:"senderAccountId"`
	ReceiverAccountID string `json:"receiverAccountId"`
	Amount            string `json:"amount"`
	Description       string `json:"description"`
	IdempotencyKey    string `json:"idempotencyKey,omitempty"`
}

func (r TransferRequest) Validate() error {
	sender := strings.TrimSpace(r.SenderAccountID)
	receiver := strings.TrimSpace(r.ReceiverAccountID)

	if sender == "" || receiver == "" {
		return fmt.Errorf("%w: senderAccountId and receiverAccountId are required", domain.ErrAccountNotFound)
	}
	if sender == receiver {
		return domain.ErrSameAccountTransfer
	}
	if _, err := ParseAmount(r.Amount); err != nil {
		return err
	}

	return nil
}

// ParseAmount accepts only positive decimal strings at currency scale, e.g.
// "30.00". "30", "30.5" and "30.005" are all rejected.
func ParseAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)

	parts := strings.Split(trimmed, ".")
	if len(parts) != 2 || len(parts[1]) != 2 || parts[0] == "" {
		return decimal.Zero, domain.ErrInvalidAmount
	}
	if !digitsOnly(parts[0]) || !digitsOnly(parts[1]) {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(trimmed)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, domain.ErrInvalidAmount
	}

	return amount, nil
}

type TransferResponse struct {
	TransferID      string `json:"transferId"`
	Reference       string `json:"reference"`
	Status          string `json:"status"`
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	SenderBalance   string `json:"senderBalance"`
	ReceiverBalance string `json:"receiverBalance"`
	CompletedAt     string `json:"completedAt"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
