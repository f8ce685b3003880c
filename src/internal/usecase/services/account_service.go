package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/oakline/banking-ledger/src/internal/commons"
	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/oakline/banking-ledger/src/internal/logger"
	"github.com/oakline/banking-ledger/src/internal/usecase/service_interfaces"
	"github.com/shopspring/decimal"
)

type AccountService struct {
	accountRepo     repo_interfaces.AccountRepository
	transactionRepo repo_interfaces.TransactionRepository
}

var _ service_interfaces.AccountService = (*AccountService)(nil)

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	transactionRepo repo_interfaces.TransactionRepository,
) *AccountService {
	return &AccountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse]("", "validation failed", err.Error()), err
	}

	balance := decimal.Zero
	if strings.TrimSpace(req.InitialDeposit) != "" {
		parsed, err := models.ParseAmount(req.InitialDeposit)
		if err != nil {
			return commons.ErrorResponse[models.AccountResponse](string(domain.KindOf(err)), err.Error()), err
		}
		balance = parsed
	}

	account := domain.Account{
		CustomerID:    strings.TrimSpace(req.CustomerID),
		AccountNumber: generateAccountNumber(),
		Name:          strings.TrimSpace(req.Name),
		Currency:      strings.ToUpper(strings.TrimSpace(req.Currency)),
		Balance:       balance,
		Status:        domain.AccountStatusActive,
	}

	created, err := s.accountRepo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) {
			return commons.ErrorResponse[models.AccountResponse]("", "account already exists", err.Error()), err
		}
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse](string(domain.KindStoreUnavailable), "unable to create account right now"), err
	}

	logger.Info("account service create account success", logger.Fields{
		"accountId":     created.ID,
		"accountNumber": created.AccountNumber,
	})
	return commons.SuccessResponse("account created successfully", accountResponse(created)), nil
}

func (s *AccountService) GetAccount(ctx context.Context, accountID string) (commons.Response[models.AccountResponse], error) {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse](string(domain.KindOf(err)), err.Error()), err
	}

	return commons.SuccessResponse("account retrieved", accountResponse(account)), nil
}

func (s *AccountService) GetBalance(ctx context.Context, accountID string) (commons.Response[models.BalanceResponse], error) {
	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return commons.ErrorResponse[models.BalanceResponse](string(domain.KindOf(err)), err.Error()), err
	}

	response := models.BalanceResponse{
		ID:            account.ID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Balance:       account.Balance.StringFixed(2),
		Currency:      account.Currency,
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
	return commons.SuccessResponse("balance retrieved", response), nil
}

func (s *AccountService) Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service deposit request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return commons.ErrorResponse[models.AccountResponse](string(domain.KindInvalidAmount), "validation failed", err.Error()), err
	}

	amount, err := models.ParseAmount(req.Amount)
	if err != nil {
		return commons.ErrorResponse[models.AccountResponse](string(domain.KindOf(err)), err.Error()), err
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Deposit via %s", strings.TrimSpace(req.DepositMethod))
	}

	account, err := s.accountRepo.DepositFunds(ctx, strings.TrimSpace(req.AccountID), amount, description)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			err = domain.ErrAccountNotFound
		} else if !errors.Is(err, domain.ErrAccountInactive) {
			err = fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		logger.Error("account service deposit failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.AccountResponse](string(domain.KindOf(err)), err.Error()), err
	}

	logger.Info("account service deposit success", logger.Fields{
		"accountId": account.ID,
		"balance":   account.Balance,
	})
	return commons.SuccessResponse("deposit completed", accountResponse(account)), nil
}

func (s *AccountService) ListTransactions(ctx context.Context, accountID string, transactionType string, limit int) (commons.Response[[]models.TransactionResponse], error) {
	entries, err := s.transactionRepo.ListByAccount(ctx, strings.TrimSpace(accountID), strings.TrimSpace(transactionType), limit)
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		return commons.ErrorResponse[[]models.TransactionResponse](string(domain.KindStoreUnavailable), err.Error()), err
	}

	responses := make([]models.TransactionResponse, 0, len(entries))
	for _, entry := range entries {
		response := models.TransactionResponse{
			ID:           entry.ID,
			AccountID:    entry.AccountID,
			Type:         string(entry.Type),
			Amount:       entry.Amount.StringFixed(2),
			BalanceAfter: entry.BalanceAfter.StringFixed(2),
			Status:       string(entry.Status),
			Description:  entry.Description,
			CreatedAt:    entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.TransferID != nil {
			response.TransferID = *entry.TransferID
		}
		responses = append(responses, response)
	}

	return commons.SuccessResponse("transactions retrieved", responses), nil
}

func (s *AccountService) getAccount(ctx context.Context, accountID string) (domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, strings.TrimSpace(accountID))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return account, nil
}

func accountResponse(account domain.Account) models.AccountResponse {
	return models.AccountResponse{
		ID:            account.ID,
		CustomerID:    account.CustomerID,
		AccountNumber: account.AccountNumber,
		Name:          account.Name,
		Currency:      account.Currency,
		Balance:       account.Balance.StringFixed(2),
		Status:        string(account.Status),
		CreatedAt:     account.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     account.UpdatedAt.Format(time.RFC3339),
	}
}

func generateAccountNumber() string {
	return fmt.Sprintf("%010d", time.Now().UnixNano()%10_000_000_000)
}
