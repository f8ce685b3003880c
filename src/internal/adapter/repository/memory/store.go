package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oakline/banking-ledger/src/internal/domain"
	"github.com/shopspring/decimal"
)

// Store keeps the whole ledger in process memory. The atomic section is a
// critical section over per-account mutexes taken in ascending account-id
// order, the same locking contract the postgres adapter gets from
// SELECT ... FOR UPDATE.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*accountRecord
	transfers map[string]domain.Transfer
	idemIndex map[string]string
	entries   []domain.Transaction

	// faultHook simulates a storage fault at a named point inside the atomic
	// section. Mutations are staged and only applied after every point passed,
	// so a fault leaves no observable effect.
	faultHook func(step string) error
}

type accountRecord struct {
	mu      sync.Mutex
	account domain.Account
}

func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*accountRecord),
		transfers: make(map[string]domain.Transfer),
		idemIndex: make(map[string]string),
	}
}

// SetFaultHook installs the fault hook. Install it before any concurrent use
// of the store; the hook is read without synchronization.
func (s *Store) SetFaultHook(hook func(step string) error) {
	s.faultHook = hook
}

func (s *Store) Create(ctx context.Context, account domain.Account) (domain.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.accounts {
		if rec.account.AccountNumber == account.AccountNumber {
			return domain.Account{}, domain.ErrDuplicateRecord
		}
	}

	s.accounts[account.ID] = &accountRecord{account: account}
	return account, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Account, error) {
	rec, ok := s.record(id)
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.account, nil
}

func (s *Store) DepositFunds(ctx context.Context, accountID string, amount decimal.Decimal, description string) (domain.Account, error) {
	rec, ok := s.record(accountID)
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.account.Status != domain.AccountStatusActive {
		return domain.Account{}, domain.ErrAccountInactive
	}

	rec.account.Balance = rec.account.Balance.Add(amount)
	rec.account.UpdatedAt = time.Now().UTC()

	s.appendEntry(domain.Transaction{
		AccountID:    rec.account.ID,
		Type:         domain.TransactionTypeDeposit,
		Amount:       amount,
		BalanceAfter: rec.account.Balance,
		Status:       domain.TransactionStatusCompleted,
		Description:  description,
	})

	return rec.account, nil
}

func (s *Store) CreateTransfer(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	if transfer.ID == "" {
		transfer.ID = uuid.NewString()
	}
	transfer.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	if transfer.IdempotencyKey != nil {
		key := strings.TrimSpace(*transfer.IdempotencyKey)
		if key != "" {
			if _, exists := s.idemIndex[key]; exists {
				return domain.Transfer{}, domain.ErrDuplicateRecord
			}
			s.idemIndex[key] = transfer.ID
		}
	}

	s.transfers[transfer.ID] = transfer
	return transfer, nil
}

func (s *Store) GetTransferByID(ctx context.Context, id string) (domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transfer, ok := s.transfers[id]
	if !ok {
		return domain.Transfer{}, domain.ErrRecordNotFound
	}
	return transfer, nil
}

func (s *Store) GetTransferByIdempotencyKey(ctx context.Context, key string) (domain.Transfer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.idemIndex[key]
	if !ok {
		return domain.Transfer{}, domain.ErrRecordNotFound
	}
	return s.transfers[id], nil
}

func (s *Store) UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer, ok := s.transfers[transferID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	if transfer.Status != domain.TransferStatusPending {
		// Terminal states never change again.
		return nil
	}

	transfer.Status = status
	if status == domain.TransferStatusCompleted || status == domain.TransferStatusFailed {
		now := time.Now().UTC()
		transfer.CompletedAt = &now
	}
	s.transfers[transferID] = transfer
	return nil
}

func (s *Store) ProcessTransfer(ctx context.Context, posting domain.TransferPosting) (domain.PostingResult, error) {
	if posting.SenderID == posting.ReceiverID {
		return domain.PostingResult{}, domain.ErrSameAccountTransfer
	}

	sender, ok := s.record(posting.SenderID)
	if !ok {
		return domain.PostingResult{}, domain.ErrAccountNotFound
	}
	receiver, ok := s.record(posting.ReceiverID)
	if !ok {
		return domain.PostingResult{}, domain.ErrAccountNotFound
	}

	first, second := sender, receiver
	if posting.ReceiverID < posting.SenderID {
		first, second = receiver, sender
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	if sender.account.Status != domain.AccountStatusActive || receiver.account.Status != domain.AccountStatusActive {
		return domain.PostingResult{}, domain.ErrAccountInactive
	}
	if !strings.EqualFold(sender.account.Currency, receiver.account.Currency) {
		return domain.PostingResult{}, domain.ErrCurrencyMismatch
	}
	if sender.account.Balance.LessThan(posting.Amount) {
		return domain.PostingResult{}, domain.ErrInsufficientFunds
	}

	senderBalance := sender.account.Balance.Sub(posting.Amount)
	receiverBalance := receiver.account.Balance.Add(posting.Amount)

	for _, step := range []string{"debit", "credit", "ledger-debit", "ledger-credit", "complete"} {
		if err := s.fault(step); err != nil {
			return domain.PostingResult{}, err
		}
	}

	now := time.Now().UTC()
	sender.account.Balance = senderBalance
	sender.account.UpdatedAt = now
	receiver.account.Balance = receiverBalance
	receiver.account.UpdatedAt = now

	transferID := posting.TransferID
	s.appendEntry(domain.Transaction{
		AccountID:    posting.SenderID,
		TransferID:   &transferID,
		Type:         domain.TransactionTypeTransfer,
		Amount:       posting.Amount.Neg(),
		BalanceAfter: senderBalance,
		Status:       domain.TransactionStatusCompleted,
		Description:  posting.Description,
	})
	s.appendEntry(domain.Transaction{
		AccountID:    posting.ReceiverID,
		TransferID:   &transferID,
		Type:         domain.TransactionTypeTransfer,
		Amount:       posting.Amount,
		BalanceAfter: receiverBalance,
		Status:       domain.TransactionStatusCompleted,
		Description:  posting.Description,
	})

	s.mu.Lock()
	if transfer, ok := s.transfers[posting.TransferID]; ok {
		transfer.Status = domain.TransferStatusCompleted
		transfer.CompletedAt = &now
		s.transfers[posting.TransferID] = transfer
	}
	s.mu.Unlock()

	return domain.PostingResult{
		SenderBalance:   senderBalance,
		ReceiverBalance: receiverBalance,
		CompletedAt:     now,
	}, nil
}

// ListTransfers returns every transfer in the store, for diagnostics and
// tests; ordering is unspecified.
func (s *Store) ListTransfers() []domain.Transfer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Transfer, 0, len(s.transfers))
	for _, transfer := range s.transfers {
		out = append(out, transfer)
	}
	return out
}

func (s *Store) ListByAccount(ctx context.Context, accountID string, transactionType string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first, entries are appended chronologically.
	var out []domain.Transaction
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		entry := s.entries[i]
		if entry.AccountID != accountID {
			continue
		}
		if transactionType != "" && string(entry.Type) != transactionType {
			continue
		}
		out = append(out, entry)
	}

	return out, nil
}

func (s *Store) record(id string) (*accountRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.accounts[id]
	return rec, ok
}

func (s *Store) appendEntry(entry domain.Transaction) {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now().UTC()

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
}

func (s *Store) fault(step string) error {
	if s.faultHook == nil {
		return nil
	}
	return s.faultHook(step)
}
