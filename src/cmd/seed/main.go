package main

import (
	"context"
	"log"
	"time"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/adapter/notifier"
	"github.com/oakline/banking-ledger/src/internal/adapter/repository/postgres"
	"github.com/oakline/banking-ledger/src/internal/config"
	"github.com/oakline/banking-ledger/src/internal/usecase/services"
)

// Seeds two demo accounts and runs one transfer between them so a fresh
// environment has data to look at.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.RunMigrations(ctx, cfg.DatabaseDSN, cfg.MigrationsDir); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	transferRepo := postgres.NewTransferRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)

	accountService := services.NewAccountService(accountRepo, transactionRepo)
	transferService := services.NewTransferService(transferRepo, accountRepo, notifier.NewWebhookNotifier(cfg.WebhookURL))

	alice, err := accountService.CreateAccount(ctx, models.CreateAccountRequest{
		CustomerID:     "demo-alice",
		Name:           "Alice Checking",
		Currency:       "USD",
		InitialDeposit: "1000.00",
	})
	if err != nil {
		log.Fatalf("seed alice: %v", err)
	}
	bob, err := accountService.CreateAccount(ctx, models.CreateAccountRequest{
		CustomerID:     "demo-bob",
		Name:           "Bob Checking",
		Currency:       "USD",
		InitialDeposit: "250.00",
	})
	if err != nil {
		log.Fatalf("seed bob: %v", err)
	}

	response, err := transferService.Transfer(ctx, models.TransferRequest{
		SenderAccountID:   alice.Data.ID,
		ReceiverAccountID: bob.Data.ID,
		Amount:            "100.00",
		Description:       "Welcome transfer",
	})
	if err != nil {
		log.Fatalf("seed transfer: %v", err)
	}

	log.Printf("seeded accounts %s and %s, transfer %s completed at %s",
		alice.Data.AccountNumber,
		bob.Data.AccountNumber,
		response.Data.Reference,
		response.Data.CompletedAt,
	)
}
