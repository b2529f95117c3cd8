package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, f *fixture, accountID string, txnType domain.TransactionType, amount string, on time.Time) *domain.AccountTransaction {
	t.Helper()
	txn, err := f.svc.Ledger.RecordTransaction(f.ctx, dto.RecordTransactionRequest{
		AccountID:       accountID,
		TransactionType: txnType,
		Amount:          dec(amount),
		TransactionDate: dto.NewDate(on),
	})
	require.NoError(t, err)
	return txn
}

func TestLedgerStatement_TotalsCoverOnlyTheWindow(t *testing.T) {
	f := newFixture(t)
	acc := f.account("Cash", domain.Asset).AccountID

	record(t, f, acc, domain.Deposit, "100", date(2024, 3, 1))
	record(t, f, acc, domain.Deposit, "50", date(2024, 3, 20))
	record(t, f, acc, domain.Withdrawal, "30", date(2024, 3, 12))

	full, err := f.svc.Ledger.GetStatement(f.ctx, acc, nil, nil)
	require.NoError(t, err)
	assert.True(t, full.TotalDeposit.Equal(dec("150")))
	assert.True(t, full.TotalWithdrawal.Equal(dec("30")))
	assert.True(t, full.Balance.Equal(dec("120")))
	assert.Equal(t, acc, full.Account.AccountID)

	from, to := date(2024, 3, 1), date(2024, 3, 15)
	window, err := f.svc.Ledger.GetStatement(f.ctx, acc, &from, &to)
	require.NoError(t, err)
	require.Len(t, window.Transactions, 2)
	assert.True(t, window.Balance.Equal(dec("70")))
	// Newest first.
	assert.Equal(t, domain.Withdrawal, window.Transactions[0].TransactionType)
	assert.Equal(t, domain.Deposit, window.Transactions[1].TransactionType)

	balance, err := f.svc.Ledger.GetBalance(f.ctx, acc)
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("120")))
}

func TestLedgerStatement_SameDayOrderedByCreation(t *testing.T) {
	f := newFixture(t)
	acc := f.account("Cash", domain.Asset).AccountID

	first := record(t, f, acc, domain.Deposit, "10", date(2024, 3, 1))
	f.clock.Advance(time.Minute)
	second := record(t, f, acc, domain.Deposit, "20", date(2024, 3, 1))

	st, err := f.svc.Ledger.GetStatement(f.ctx, acc, nil, nil)
	require.NoError(t, err)
	require.Len(t, st.Transactions, 2)
	assert.Equal(t, second.TransactionID, st.Transactions[0].TransactionID)
	assert.Equal(t, first.TransactionID, st.Transactions[1].TransactionID)
}

func TestRecordTransaction_DefaultsDateToToday(t *testing.T) {
	f := newFixture(t)
	txn, err := f.svc.Ledger.RecordTransaction(f.ctx, dto.RecordTransactionRequest{
		AccountID: f.bank.AccountID, TransactionType: domain.Deposit, Amount: dec("12.345"),
	})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 15), txn.TransactionDate)
	assert.True(t, txn.Amount.Equal(dec("12.35")))
}

func TestRecordTransaction_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		req     dto.RecordTransactionRequest
		wantErr error
	}{
		{
			name:    "zero amount",
			req:     dto.RecordTransactionRequest{AccountID: f.bank.AccountID, TransactionType: domain.Deposit, Amount: dec("0")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "amount below one cent",
			req:     dto.RecordTransactionRequest{AccountID: f.bank.AccountID, TransactionType: domain.Deposit, Amount: dec("0.004")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			req:     dto.RecordTransactionRequest{AccountID: f.bank.AccountID, TransactionType: domain.Withdrawal, Amount: dec("-5")},
			wantErr: apperrors.ErrInvalidAmount,
		},
		{
			name:    "unknown type",
			req:     dto.RecordTransactionRequest{AccountID: f.bank.AccountID, TransactionType: "transfer", Amount: dec("5")},
			wantErr: apperrors.ErrValidation,
		},
		{
			name:    "unknown account",
			req:     dto.RecordTransactionRequest{AccountID: "missing", TransactionType: domain.Deposit, Amount: dec("5")},
			wantErr: apperrors.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn, err := f.svc.Ledger.RecordTransaction(f.ctx, tt.req)
			assert.Nil(t, txn)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	balance, err := f.svc.Ledger.GetBalance(f.ctx, f.bank.AccountID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestGetStatement_RejectsInvertedWindow(t *testing.T) {
	f := newFixture(t)
	from, to := date(2024, 3, 10), date(2024, 3, 1)
	_, err := f.svc.Ledger.GetStatement(f.ctx, f.bank.AccountID, &from, &to)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Ledger.GetStatement(f.ctx, "missing", nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}
