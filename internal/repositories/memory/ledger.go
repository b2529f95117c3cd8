package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (v *view) ListTransactionsByAccount(_ context.Context, accountID string, from, to *time.Time) ([]domain.AccountTransaction, error) {
	res := make([]domain.AccountTransaction, 0)
	v.read(func(st *state) {
		for _, t := range st.transactions {
			if t.AccountID != accountID {
				continue
			}
			if from != nil && t.TransactionDate.Before(*from) {
				continue
			}
			if to != nil && t.TransactionDate.After(*to) {
				continue
			}
			res = append(res, t)
		}
	})
	slices.SortFunc(res, func(a, b domain.AccountTransaction) int {
		if c := b.TransactionDate.Compare(a.TransactionDate); c != 0 {
			return c
		}
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.TransactionID, a.TransactionID)
	})
	return res, nil
}

func (v *view) GetAccountBalance(_ context.Context, accountID string) (decimal.Decimal, error) {
	var (
		balance decimal.Decimal
		found   bool
	)
	v.read(func(st *state) {
		if _, found = st.accounts[accountID]; found {
			balance = st.balanceOf(accountID)
		}
	})
	if !found {
		return decimal.Zero, fmt.Errorf("account %s: %w", accountID, apperrors.ErrAccountNotFound)
	}
	return balance, nil
}

func (v *view) SaveTransaction(_ context.Context, txn domain.AccountTransaction) error {
	return v.write(func(st *state) error {
		if _, ok := st.accounts[txn.AccountID]; !ok {
			return fmt.Errorf("account %s: %w", txn.AccountID, apperrors.ErrAccountNotFound)
		}
		st.transactions = append(st.transactions, txn)
		return nil
	})
}
