package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oakline/banking-ledger/src/internal/adapter/http/models"
	"github.com/oakline/banking-ledger/src/internal/adapter/repository/repo_interfaces"
	"github.com/oakline/banking-ledger/src/internal/commons"
	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/oakline/banking-ledger/src/internal/logger"
	"github.com/oakline/banking-ledger/src/internal/usecase/service_interfaces"
)

type TransferService struct {
	transferRepo repo_interfaces.TransferRepository
	accountRepo  repo_interfaces.AccountRepository
	notifier     service_interfaces.TransferNotifier
}

var _ service_interfaces.TransferService = (*TransferService)(nil)

func NewTransferService(
	transferRepo repo_interfaces.TransferRepository,
	accountRepo repo_interfaces.AccountRepository,
	notifier service_interfaces.TransferNotifier,
) *TransferService {
	return &TransferService{
		transferRepo: transferRepo,
		accountRepo:  accountRepo,
		notifier:     notifier,
	}
}

var transferRefCounter uint32

// Transfer validates the request, then hands the posting to the repository's
// atomic section. Validation failures leave no record behind; failures inside
// the atomic section mark the pending transfer FAILED and surface the original
// error. Event emission after commit never changes the outcome.
func (s *TransferService) Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		return transferError(err), err
	}

	amount, err := models.ParseAmount(req.Amount)
	if err != nil {
		return transferError(err), err
	}

	senderID := strings.TrimSpace(req.SenderAccountID)
	receiverID := strings.TrimSpace(req.ReceiverAccountID)

	sender, err := s.loadAccount(ctx, senderID)
	if err != nil {
		return transferError(err), err
	}
	receiver, err := s.loadAccount(ctx, receiverID)
	if err != nil {
		return transferError(err), err
	}

	if sender.Status != domain.AccountStatusActive || receiver.Status != domain.AccountStatusActive {
		err := domain.ErrAccountInactive
		return transferError(err), err
	}
	if !strings.EqualFold(sender.Currency, receiver.Currency) {
		err := domain.ErrCurrencyMismatch
		return transferError(err), err
	}
	// Pre-check only; the balance is re-checked under the account locks.
	if sender.Balance.LessThan(amount) {
		err := domain.ErrInsufficientFunds
		return transferError(err), err
	}

	idempotencyKey := strings.TrimSpace(req.IdempotencyKey)
	if idempotencyKey != "" {
		existing, err := s.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey)
		if err == nil {
			return s.replay(ctx, existing)
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			err = storeUnavailable(err)
			return transferError(err), err
		}
	}

	transfer := domain.Transfer{
		Reference:   generateTransferReference(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Currency:    strings.ToUpper(strings.TrimSpace(sender.Currency)),
		Description: strings.TrimSpace(req.Description),
		Status:      domain.TransferStatusPending,
	}
	if idempotencyKey != "" {
		transfer.IdempotencyKey = &idempotencyKey
	}

	created, err := s.transferRepo.Create(ctx, transfer)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateRecord) && idempotencyKey != "" {
			// Lost the race against a concurrent request with the same key.
			if existing, lookupErr := s.transferRepo.GetByIdempotencyKey(ctx, idempotencyKey); lookupErr == nil {
				return s.replay(ctx, existing)
			}
		}
		err = storeUnavailable(err)
		return transferError(err), err
	}

	result, err := s.transferRepo.ProcessTransfer(ctx, domain.TransferPosting{
		TransferID:  created.ID,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Currency:    created.Currency,
		Description: created.Description,
	})
	if err != nil {
		if updateErr := s.transferRepo.UpdateStatus(ctx, created.ID, domain.TransferStatusFailed); updateErr != nil {
			logger.Error("transfer service mark failed transfer", updateErr, logger.Fields{
				"transferId": created.ID,
			})
		}
		if domain.KindOf(err) == "" {
			err = storeUnavailable(err)
		}
		logger.Error("transfer service posting failed", err, logger.Fields{
			"transferId": created.ID,
			"reference":  created.Reference,
		})
		return transferError(err), err
	}

	created.Status = domain.TransferStatusCompleted
	created.CompletedAt = &result.CompletedAt

	s.emitCompleted(created)

	logger.Info("transfer service completed", logger.Fields{
		"transferId": created.ID,
		"reference":  created.Reference,
		"amount":     created.Amount,
	})

	response := models.TransferResponse{
		TransferID:      created.ID,
		Reference:       created.Reference,
		Status:          string(created.Status),
		Amount:          created.Amount.StringFixed(2),
		Currency:        created.Currency,
		Description:     created.Description,
		SenderBalance:   result.SenderBalance.StringFixed(2),
		ReceiverBalance: result.ReceiverBalance.StringFixed(2),
		CompletedAt:     result.CompletedAt.Format(time.RFC3339),
	}
	return commons.SuccessResponse("transfer completed", response), nil
}

// replay returns the stored outcome of an idempotency key without touching
// any balance.
func (s *TransferService) replay(ctx context.Context, existing domain.Transfer) (commons.Response[models.TransferResponse], error) {
	logger.Info("transfer service idempotent replay", logger.Fields{
		"transferId": existing.ID,
		"status":     existing.Status,
	})

	if existing.Status != domain.TransferStatusCompleted {
		err := fmt.Errorf("transfer %s was already attempted with this idempotency key and is %s", existing.ID, strings.ToLower(string(existing.Status)))
		return transferError(err), err
	}

	response := models.TransferResponse{
		TransferID:  existing.ID,
		Reference:   existing.Reference,
		Status:      string(existing.Status),
		Amount:      existing.Amount.StringFixed(2),
		Currency:    existing.Currency,
		Description: existing.Description,
	}
	if existing.CompletedAt != nil {
		response.CompletedAt = existing.CompletedAt.Format(time.RFC3339)
	}
	if sender, err := s.accountRepo.GetByID(ctx, existing.SenderID); err == nil {
		response.SenderBalance = sender.Balance.StringFixed(2)
	}
	if receiver, err := s.accountRepo.GetByID(ctx, existing.ReceiverID); err == nil {
		response.ReceiverBalance = receiver.Balance.StringFixed(2)
	}

	return commons.SuccessResponse("transfer already processed", response), nil
}

func (s *TransferService) loadAccount(ctx context.Context, id string) (domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.Account{}, domain.ErrAccountNotFound
		}
		return domain.Account{}, storeUnavailable(err)
	}
	return account, nil
}

// emitCompleted is fire-and-forget: a slow or failing notification target must
// never block or fail a transfer whose money already moved.
func (s *TransferService) emitCompleted(transfer domain.Transfer) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.TransferCompleted(transfer); err != nil {
			logger.Error("transfer service notification delivery failed", err, logger.Fields{
				"transferId": transfer.ID,
			})
		}
	}()
}

func transferError(err error) commons.Response[models.TransferResponse] {
	return commons.ErrorResponse[models.TransferResponse](string(domain.KindOf(err)), err.Error())
}

func storeUnavailable(cause error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, cause)
}

func generateTransferReference() string {
	now := time.Now().UTC()
	base := now.Format("20060102150405") + fmt.Sprintf("%09d", now.Nanosecond())
	counter := atomic.AddUint32(&transferRefCounter, 1) % 1000000
	return "TRF" + base + fmt.Sprintf("%06d", counter)
}
