package domain

import (
	"fmt"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for persisted and displayed amounts.
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds to two decimal places, half away from zero.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// SumMoney adds values at full precision and rounds the result once.
func SumMoney(values ...decimal.Decimal) decimal.Decimal {
	return RoundMoney(sumExact(values))
}

func sumExact(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// PercentOf returns round(base * pct / 100, 2).
func PercentOf(base, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(base.Mul(pct).Div(hundred))
}

// MinMoney returns the smaller of a and b.
func MinMoney(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// RequirePositive fails with ErrInvalidAmount unless d > 0.
func RequirePositive(field string, d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero, got %s", apperrors.ErrInvalidAmount, field, d.String())
	}
	return nil
}

// PositiveMoney rounds d to money scale and fails with ErrInvalidAmount unless the
// rounded value is > 0. Amounts below one cent never reach storage.
func PositiveMoney(field string, d decimal.Decimal) (decimal.Decimal, error) {
	rounded := RoundMoney(d)
	if !rounded.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s must be at least 0.01, got %s", apperrors.ErrInvalidAmount, field, d.String())
	}
	return rounded, nil
}

// RequireNonNegative fails with ErrInvalidAmount when d < 0.
func RequireNonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative, got %s", apperrors.ErrInvalidAmount, field, d.String())
	}
	return nil
}
