package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const initialBalanceDescription = "Initial balance"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	store  portsrepo.Store
	ledger portssvc.LedgerWriterSvc
}

// NewAccountService creates a new account service. Initial balances are posted through ledger.
func NewAccountService(store portsrepo.Store, ledger portssvc.LedgerWriterSvc, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(options),
		store:       store,
		ledger:      ledger,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	now := s.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        name,
		AccountType: req.AccountType,
		Subtype:     req.Subtype,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	initial := decimal.Zero
	if req.InitialBalance != nil {
		initial = domain.RoundMoney(*req.InitialBalance)
	}

	err := s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := repos.Accounts().SaveAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to save account: %w", err)
		}
		if initial.IsZero() {
			return nil
		}

		txn := domain.AccountTransaction{
			AccountID:       account.AccountID,
			TransactionType: domain.Deposit,
			Amount:          initial,
			Description:     initialBalanceDescription,
			TransactionDate: s.Today(),
		}
		if initial.IsNegative() {
			txn.TransactionType = domain.Withdrawal
			txn.Amount = initial.Abs()
		}
		_, err := s.ledger.RecordTransactionInUnit(ctx, repos, txn)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	account.Balance = initial
	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("initial_balance", initial.String()))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.store.Accounts().FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}

	s.LogDebug(ctx, "Account retrieved successfully",
		slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	filter := domain.AccountFilter{IncludeInactive: params.IncludeInactive}
	if params.Type != "" {
		t := domain.AccountType(params.Type)
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, params.Type)
		}
		filter.AccountType = &t
	}

	accounts, err := s.store.Accounts().ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("type", params.Type))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	err := s.store.Accounts().DeactivateAccount(ctx, accountID, s.Now())
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to deactivate account",
				slog.String("account_id", accountID))
		}
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}
