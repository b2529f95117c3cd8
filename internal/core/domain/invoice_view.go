package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoicePayment is a payment as seen from one invoice: the payment, the portion allocated
// to this invoice, and where the payment's money landed.
type InvoicePayment struct {
	Payment
	AllocationID    string                `json:"allocationID"`
	AllocatedAmount decimal.Decimal       `json:"allocatedAmount"`
	AllocatedAt     time.Time             `json:"allocationDate"`
	AccountSplits   []PaymentAccountSplit `json:"accountSplits"`
}

// PaymentSummary totals the payments applied to one invoice.
type PaymentSummary struct {
	TotalPayments    int             `json:"totalPayments"`
	TotalAllocated   decimal.Decimal `json:"totalAllocated"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// InvoiceView is the reconstructed financial picture of one invoice.
// Customer and Quote are nil when the referenced row does not exist.
type InvoiceView struct {
	Invoice        Invoice           `json:"invoice"`
	Customer       *Contact          `json:"customer"`
	Quote          *Quote            `json:"quote"`
	LineItems      []InvoiceLineItem `json:"lineItems"`
	Payments       []InvoicePayment  `json:"payments"`
	PaymentSummary PaymentSummary    `json:"paymentSummary"`
	Credits        []Credit          `json:"credits"`
	Aging          Aging             `json:"aging"`
}
