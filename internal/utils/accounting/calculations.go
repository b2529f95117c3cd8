package accounting

import (
	"fmt"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives invoice totals from its line items.
//
// Line totals are accumulated at full precision and rounded once, so the result does not
// depend on the order of items. Returned LineTotals are rounded and aligned with items.
func ComputeTotals(items []domain.InvoiceLineItem, discountPct, taxAmount decimal.Decimal) (domain.InvoiceTotals, error) {
	if len(items) == 0 {
		return domain.InvoiceTotals{}, apperrors.ErrEmptyInvoice
	}
	if err := domain.RequireNonNegative("discount percentage", discountPct); err != nil {
		return domain.InvoiceTotals{}, err
	}
	if discountPct.GreaterThan(hundred) {
		return domain.InvoiceTotals{}, fmt.Errorf("%w: discount percentage cannot exceed 100, got %s", apperrors.ErrInvalidAmount, discountPct)
	}
	if err := domain.RequireNonNegative("tax amount", taxAmount); err != nil {
		return domain.InvoiceTotals{}, err
	}

	subtotal := decimal.Zero
	lineTotals := make([]decimal.Decimal, len(items))
	for i, item := range items {
		if err := domain.RequirePositive(fmt.Sprintf("line %d quantity", i+1), item.Quantity); err != nil {
			return domain.InvoiceTotals{}, err
		}
		if err := domain.RequirePositive(fmt.Sprintf("line %d unit price", i+1), item.UnitPrice); err != nil {
			return domain.InvoiceTotals{}, err
		}
		exact := item.Quantity.Mul(item.UnitPrice)
		subtotal = subtotal.Add(exact)
		lineTotals[i] = domain.RoundMoney(exact)
	}

	subtotal = domain.RoundMoney(subtotal)
	discount := domain.PercentOf(subtotal, discountPct)
	tax := domain.RoundMoney(taxAmount)

	return domain.InvoiceTotals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		TaxAmount:      tax,
		TotalAmount:    subtotal.Sub(discount).Add(tax),
		LineTotals:     lineTotals,
	}, nil
}

// DaysBetween returns floor((to - from) / 24h), which is negative when to is before from.
func DaysBetween(from, to time.Time) int {
	const day = 24 * time.Hour
	diff := to.Sub(from)
	days := int(diff / day)
	if diff < 0 && diff%day != 0 {
		days--
	}
	return days
}

// ClassifyAging buckets a receivable by how far asOf is past dueDate.
// An invoice is overdue only while it still has a positive balance.
func ClassifyAging(dueDate, asOf time.Time, balanceDue decimal.Decimal) domain.Aging {
	days := DaysBetween(dueDate, asOf)

	bucket := domain.BucketCurrent
	switch {
	case days <= 0:
	case days <= 30:
		bucket = domain.Bucket1To30
	case days <= 60:
		bucket = domain.Bucket31To60
	case days <= 90:
		bucket = domain.Bucket61To90
	default:
		bucket = domain.BucketOver90
	}

	return domain.Aging{
		DaysPastDue: max(days, 0),
		Bucket:      bucket,
		IsOverdue:   days > 0 && balanceDue.IsPositive(),
	}
}

// LedgerTotals sums deposits and withdrawals. Balance = deposits - withdrawals.
type LedgerTotals struct {
	TotalDeposit    decimal.Decimal
	TotalWithdrawal decimal.Decimal
	Balance         decimal.Decimal
}

// SummarizeTransactions totals a set of ledger entries.
func SummarizeTransactions(txns []domain.AccountTransaction) LedgerTotals {
	deposits := decimal.Zero
	withdrawals := decimal.Zero
	for _, txn := range txns {
		switch txn.TransactionType {
		case domain.Deposit:
			deposits = deposits.Add(txn.Amount)
		case domain.Withdrawal:
			withdrawals = withdrawals.Add(txn.Amount)
		}
	}
	deposits = domain.RoundMoney(deposits)
	withdrawals = domain.RoundMoney(withdrawals)
	return LedgerTotals{
		TotalDeposit:    deposits,
		TotalWithdrawal: withdrawals,
		Balance:         deposits.Sub(withdrawals),
	}
}

// ValidateSplits checks that a payment's account splits add up to exactly its amount.
func ValidateSplits(amount decimal.Decimal, splits []domain.PaymentAccountSplit) error {
	sum := decimal.Zero
	for _, s := range splits {
		if !s.Amount.IsPositive() {
			return fmt.Errorf("%w: split for account %s is not positive: %s", apperrors.ErrInternalConsistency, s.AccountID, s.Amount)
		}
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(amount) {
		return fmt.Errorf("%w: splits sum to %s but payment amount is %s", apperrors.ErrInternalConsistency, sum, amount)
	}
	return nil
}
