package domain

import "errors"

// ErrorKind is the machine-readable classification surfaced to callers.
type ErrorKind string

const (
	KindInvalidAmount       ErrorKind = "InvalidAmount"
	KindSameAccountTransfer ErrorKind = "SameAccountTransfer"
	KindAccountNotFound     ErrorKind = "AccountNotFound"
	KindAccountInactive     ErrorKind = "AccountInactive"
	KindCurrencyMismatch    ErrorKind = "CurrencyMismatch"
	KindInsufficientFunds   ErrorKind = "InsufficientFunds"
	KindStoreUnavailable    ErrorKind = "StoreUnavailable"
)

type LedgerError struct {
	Kind    ErrorKind
	Message string
}

func (e *LedgerError) Error() string { return e.Message }

var (
	ErrInvalidAmount       = &LedgerError{Kind: KindInvalidAmount, Message: "amount must be a positive decimal with exactly two fraction digits"}
	ErrSameAccountTransfer = &LedgerError{Kind: KindSameAccountTransfer, Message: "sender and receiver account cannot be the same"}
	ErrAccountNotFound     = &LedgerError{Kind: KindAccountNotFound, Message: "account not found"}
	ErrAccountInactive     = &LedgerError{Kind: KindAccountInactive, Message: "account is not active"}
	ErrCurrencyMismatch    = &LedgerError{Kind: KindCurrencyMismatch, Message: "accounts use different currencies"}
	ErrInsufficientFunds   = &LedgerError{Kind: KindInsufficientFunds, Message: "insufficient funds"}
	ErrStoreUnavailable    = &LedgerError{Kind: KindStoreUnavailable, Message: "storage is unavailable, the transfer was not applied"}
)

// Storage-level sentinels, translated to the taxonomy above at the service
// boundary.
var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
)

// KindOf reports the taxonomy kind of err, or "" for untyped errors.
func KindOf(err error) ErrorKind {
	var lerr *LedgerError
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return ""
}
