package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

func (st *state) balanceOf(accountID string) decimal.Decimal {
	var txns []domain.AccountTransaction
	for _, t := range st.transactions {
		if t.AccountID == accountID {
			txns = append(txns, t)
		}
	}
	return accounting.SummarizeTransactions(txns).Balance
}

func (st *state) accountWithBalance(a domain.Account) domain.Account {
	a.Balance = st.balanceOf(a.AccountID)
	return a
}

func (v *view) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	var (
		acc   domain.Account
		found bool
	)
	v.read(func(st *state) {
		if a, ok := st.accounts[accountID]; ok {
			acc, found = st.accountWithBalance(a), true
		}
	})
	if !found {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrAccountNotFound)
	}
	return &acc, nil
}

func (v *view) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	res := make(map[string]domain.Account, len(accountIDs))
	v.read(func(st *state) {
		for _, id := range accountIDs {
			if a, ok := st.accounts[id]; ok {
				res[id] = st.accountWithBalance(a)
			}
		}
	})
	return res, nil
}

func (v *view) ListAccounts(_ context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	res := make([]domain.Account, 0)
	v.read(func(st *state) {
		for _, a := range st.accounts {
			if !a.IsActive && !filter.IncludeInactive {
				continue
			}
			if filter.AccountType != nil && a.AccountType != *filter.AccountType {
				continue
			}
			res = append(res, st.accountWithBalance(a))
		}
	})
	slices.SortFunc(res, func(a, b domain.Account) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.AccountID, b.AccountID)
	})
	return res, nil
}

func (v *view) SaveAccount(_ context.Context, account domain.Account) error {
	return v.write(func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
		}
		account.Balance = decimal.Zero
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (v *view) DeactivateAccount(_ context.Context, accountID string, now time.Time) error {
	return v.write(func(st *state) error {
		a, ok := st.accounts[accountID]
		if !ok {
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrAccountNotFound)
		}
		a.IsActive = false
		a.UpdatedAt = now
		st.accounts[accountID] = a
		return nil
	})
}
