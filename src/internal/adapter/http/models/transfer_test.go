package models_test

import (
	"errors"
	"testing"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/domain"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		"30.00":     "30",
		"0.01":      "0.01",
		"100.50":    "100.5",
		" 12.34 ":   "12.34",
		"999999.99": "999999.99",
	}
	for raw, want := range valid {
		amount, err := models.ParseAmount(raw)
		if err != nil {
			t.Fatalf("ParseAmount(%q): %v", raw, err)
		}
		if amount.String() != want {
			t.Fatalf("ParseAmount(%q) = %s, want %s", raw, amount, want)
		}
	}

	invalid := []string{"", "30", "30.5", "30.005", "0.00", "-5.00", "abc", "1,000.00", ".50", "10.", "1e2.00"}
	for _, raw := range invalid {
		if _, err := models.ParseAmount(raw); !errors.Is(err, domain.ErrInvalidAmount) {
			t.Fatalf("ParseAmount(%q) accepted, want invalid-amount error", raw)
		}
	}
}

func TestTransferRequestValidate(t *testing.T) {
	base := models.TransferRequest{
		SenderAccountID:   "a",
		ReceiverAccountID: "b",
		Amount:            "10.00",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	same := base
	same.ReceiverAccountID = "a"
	if err := same.Validate(); !errors.Is(err, domain.ErrSameAccountTransfer) {
		t.Fatalf("expected same-account error, got %v", err)
	}

	missing := base
	missing.SenderAccountID = "  "
	if err := missing.Validate(); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected missing-account error, got %v", err)
	}

	badAmount := base
	badAmount.Amount = "10.5"
	if err := badAmount.Validate(); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("expected invalid-amount error, got %v", err)
	}
}

func TestDepositRequestValidate(t *testing.T) {
	base := models.DepositRequest{
		AccountID:     "a",
		Amount:        "10.00",
		DepositMethod: "bank_transfer",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	badMethod := base
	badMethod.DepositMethod = "barter"
	if err := badMethod.Validate(); err == nil {
		t.Fatal("expected unsupported deposit method to be rejected")
	}
}
