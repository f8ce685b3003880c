package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
	AccountStatusClosed   AccountStatus = "CLOSED"
)

// Account balances are stored at currency scale (two fraction digits) and are
// never negative between completed operations. Only the ledger posting path
// mutates Balance.
type Account struct {
	ID            string
	CustomerID    string
	AccountNumber string
	Name          string
	Currency      string
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
