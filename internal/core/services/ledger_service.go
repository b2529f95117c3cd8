package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/platform/metrics"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ledgerService records deposits and withdrawals and derives balances from them.
type ledgerService struct {
	BaseService
	store portsrepo.Store
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store portsrepo.Store, options ...ServiceOption) portssvc.LedgerSvcFacade {
	return &ledgerService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.AccountTransaction, error) {
	txn := domain.AccountTransaction{
		AccountID:       req.AccountID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		TransactionDate: req.TransactionDate.Time,
	}
	if txn.TransactionDate.IsZero() {
		txn.TransactionDate = s.Today()
	}

	var recorded *domain.AccountTransaction
	err := s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		recorded, err = s.RecordTransactionInUnit(ctx, repos, txn)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerTransactionRecorded(string(recorded.TransactionType))
	s.LogInfo(ctx, "Ledger transaction recorded",
		slog.String("transaction_id", recorded.TransactionID),
		slog.String("account_id", recorded.AccountID),
		slog.String("type", string(recorded.TransactionType)),
		slog.String("amount", recorded.Amount.String()))
	return recorded, nil
}

// RecordTransactionInUnit rounds txn, validates it against its account and appends it.
// The id and created_at are filled in here.
func (s *ledgerService) RecordTransactionInUnit(ctx context.Context, repos portsrepo.Repositories, txn domain.AccountTransaction) (*domain.AccountTransaction, error) {
	txn.Amount = domain.RoundMoney(txn.Amount)
	if err := txn.Validate(); err != nil {
		s.LogWarn(ctx, err, "Rejected ledger transaction", slog.String("account_id", txn.AccountID))
		return nil, err
	}

	account, err := repos.Accounts().FindAccountByID(ctx, txn.AccountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for transaction", slog.String("account_id", txn.AccountID))
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.AccountID)
	}

	txn.TransactionID = uuid.NewString()
	txn.CreatedAt = s.Now()

	if err := repos.Ledger().SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save ledger transaction", slog.String("account_id", txn.AccountID))
		return nil, fmt.Errorf("failed to save transaction for account %s: %w", txn.AccountID, err)
	}
	return &txn, nil
}

func (s *ledgerService) GetStatement(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountStatement, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: statement end date is before its start date", apperrors.ErrValidation)
	}

	account, err := s.store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for statement", slog.String("account_id", accountID))
		}
		return nil, err
	}

	txns, err := s.store.Ledger().ListTransactionsByAccount(ctx, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	if txns == nil {
		txns = []domain.AccountTransaction{}
	}

	totals := accounting.SummarizeTransactions(txns)
	s.LogDebug(ctx, "Account statement built",
		slog.String("account_id", accountID),
		slog.Int("transactions", len(txns)))

	return &domain.AccountStatement{
		Account:         *account,
		From:            from,
		To:              to,
		Transactions:    txns,
		TotalDeposit:    totals.TotalDeposit,
		TotalWithdrawal: totals.TotalWithdrawal,
		Balance:         totals.Balance,
	}, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if _, err := s.store.Accounts().FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	balance, err := s.store.Ledger().GetAccountBalance(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to get account balance", slog.String("account_id", accountID))
		return decimal.Zero, fmt.Errorf("failed to get balance for account %s: %w", accountID, err)
	}
	return domain.RoundMoney(balance), nil
}
