package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a ledger entry adds to or removes from an account.
type TransactionType string

const (
	Deposit    TransactionType = "deposit"
	Withdrawal TransactionType = "withdrawal"
)

// IsValid reports whether t is deposit or withdrawal.
func (t TransactionType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// AccountTransaction is a single append-only ledger entry against one account.
// Amount is always positive; the sign comes from TransactionType.
type AccountTransaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// SignedAmount is +Amount for deposits and -Amount for withdrawals.
func (t AccountTransaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Withdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants every ledger entry must hold before it is persisted.
func (t AccountTransaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("%w: transaction type must be deposit or withdrawal, got %q", apperrors.ErrValidation, t.TransactionType)
	}
	if err := RequirePositive("amount", t.Amount); err != nil {
		return err
	}
	if t.TransactionDate.IsZero() {
		return fmt.Errorf("%w: transaction date is required", apperrors.ErrValidation)
	}
	return nil
}

// AccountStatement is an account's ledger entries within a date window.
// Totals and Balance cover only the entries in the window.
type AccountStatement struct {
	Account         Account              `json:"account"`
	From            *time.Time           `json:"from,omitempty"`
	To              *time.Time           `json:"to,omitempty"`
	Transactions    []AccountTransaction `json:"transactions"`
	TotalDeposit    decimal.Decimal      `json:"totalDeposit"`
	TotalWithdrawal decimal.Decimal      `json:"totalWithdrawal"`
	Balance         decimal.Decimal      `json:"balance"`
}
