package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/adapter/repository/memory"
	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/oakline/banking-ledger/src/internal/usecase/services"
)

type accountFixture struct {
	store   *memory.Store
	service *services.AccountService
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	store := memory.NewStore()
	service := services.NewAccountService(
		memory.NewAccountRepository(store),
		memory.NewTransactionRepository(store),
	)
	return &accountFixture{store: store, service: service}
}

func TestAccountServiceCreateAndGetBalance(t *testing.T) {
	f := newAccountFixture(t)

	created, err := f.service.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:     "cust-1",
		Name:           "Alice Checking",
		Currency:       "usd",
		InitialDeposit: "150.00",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if created.Data == nil {
		t.Fatal("expected account data in response")
	}
	if created.Data.Currency != "USD" {
		t.Fatalf("currency not normalized: %s", created.Data.Currency)
	}
	if created.Data.Balance != "150.00" {
		t.Fatalf("balance = %s, want 150.00", created.Data.Balance)
	}
	if len(created.Data.AccountNumber) != 10 {
		t.Fatalf("account number %q is not 10 digits", created.Data.AccountNumber)
	}

	balance, err := f.service.GetBalance(context.Background(), created.Data.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if balance.Data.Balance != "150.00" {
		t.Fatalf("stored balance = %s, want 150.00", balance.Data.Balance)
	}
}

func TestAccountServiceCreateValidation(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.CreateAccount(context.Background(), models.CreateAccountRequest{
		Name:     "No Customer",
		Currency: "US",
	})
	if err == nil {
		t.Fatal("expected validation error for missing customer and bad currency")
	}
}

func TestAccountServiceGetUnknownAccount(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.GetAccount(context.Background(), "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account-not-found, got %v", err)
	}
}

func TestAccountServiceDepositAppendsLedgerRow(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.store.Create(context.Background(), domain.Account{
		ID:            "alice",
		CustomerID:    "cust-1",
		AccountNumber: "0000000001",
		Name:          "alice",
		Currency:      "USD",
		Balance:       decimal.RequireFromString("10.00"),
		Status:        domain.AccountStatusActive,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	resp, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountID:     "alice",
		Amount:        "90.00",
		DepositMethod: "bank_transfer",
	})
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if resp.Data.Balance != "100.00" {
		t.Fatalf("balance after deposit = %s, want 100.00", resp.Data.Balance)
	}

	rows, err := f.service.ListTransactions(context.Background(), "alice", "", 10)
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(*rows.Data) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(*rows.Data))
	}
	row := (*rows.Data)[0]
	if row.Type != string(domain.TransactionTypeDeposit) {
		t.Fatalf("row type = %s", row.Type)
	}
	if row.Amount != "90.00" || row.BalanceAfter != "100.00" {
		t.Fatalf("row amount=%s balanceAfter=%s", row.Amount, row.BalanceAfter)
	}
	if row.Description == "" {
		t.Fatal("expected a default deposit description")
	}
}

func TestAccountServiceDepositValidation(t *testing.T) {
	f := newAccountFixture(t)

	cases := []models.DepositRequest{
		{AccountID: "alice", Amount: "10.5", DepositMethod: "cash"},
		{AccountID: "alice", Amount: "0.00", DepositMethod: "cash"},
		{AccountID: "alice", Amount: "10.00", DepositMethod: "carrier_pigeon"},
		{Amount: "10.00", DepositMethod: "cash"},
	}
	for _, req := range cases {
		if _, err := f.service.Deposit(context.Background(), req); err == nil {
			t.Fatalf("expected validation error for %+v", req)
		}
	}
}

func TestAccountServiceDepositUnknownAccount(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.service.Deposit(context.Background(), models.DepositRequest{
		AccountID:     "missing",
		Amount:        "10.00",
		DepositMethod: "cash",
	})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected account-not-found, got %v", err)
	}
}

func TestAccountServiceListTransactionsTypeFilter(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.store.Create(context.Background(), domain.Account{
		ID:            "alice",
		CustomerID:    "cust-1",
		AccountNumber: "0000000001",
		Name:          "alice",
		Currency:      "USD",
		Balance:       decimal.Zero,
		Status:        domain.AccountStatusActive,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := f.service.Deposit(context.Background(), models.DepositRequest{
			AccountID:     "alice",
			Amount:        "5.00",
			DepositMethod: "cash",
		}); err != nil {
			t.Fatalf("deposit %d: %v", i, err)
		}
	}

	deposits, err := f.service.ListTransactions(context.Background(), "alice", string(domain.TransactionTypeDeposit), 10)
	if err != nil {
		t.Fatalf("list deposits: %v", err)
	}
	if len(*deposits.Data) != 3 {
		t.Fatalf("expected 3 deposit rows, got %d", len(*deposits.Data))
	}

	transfers, err := f.service.ListTransactions(context.Background(), "alice", string(domain.TransactionTypeTransfer), 10)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(*transfers.Data) != 0 {
		t.Fatalf("expected no transfer rows, got %d", len(*transfers.Data))
	}
}
