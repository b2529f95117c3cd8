package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is money received from a contact. Payments are immutable once recorded.
type Payment struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"`
	PaymentDate     time.Time       `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	ContactID       string          `json:"contactID"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AllocationReferenceType names what an allocation is applied to.
type AllocationReferenceType string

const (
	AllocateToInvoice AllocationReferenceType = "invoice"
	AllocateToOther   AllocationReferenceType = "other"
)

// PaymentAllocation attributes part of a payment to an invoice (or other reference).
type PaymentAllocation struct {
	AllocationID    string                  `json:"allocationID"`
	PaymentID       string                  `json:"paymentID"`
	ReferenceType   AllocationReferenceType `json:"referenceType"`
	ReferenceID     string                  `json:"referenceID"`
	AllocatedAmount decimal.Decimal         `json:"allocatedAmount"`
	CreatedAt       time.Time               `json:"createdAt"`
}

// PaymentAccountSplit says which account received part of a payment.
// The splits of one payment always sum to its amount.
type PaymentAccountSplit struct {
	SplitID   string          `json:"splitID"`
	PaymentID string          `json:"paymentID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`

	// Populated on reads that join the account.
	AccountName string      `json:"accountName,omitempty"`
	AccountType AccountType `json:"accountType,omitempty"`
}

// OverpaymentPolicy decides what happens when a target asks for more than an invoice owes.
type OverpaymentPolicy string

const (
	// OverpaymentCredit turns the excess into a credit for the contact.
	OverpaymentCredit OverpaymentPolicy = "credit"
	// OverpaymentReject fails the whole allocation.
	OverpaymentReject OverpaymentPolicy = "reject"
)

// IsValid reports whether p is a known policy.
func (p OverpaymentPolicy) IsValid() bool {
	return p == OverpaymentCredit || p == OverpaymentReject
}

// AllocationTarget asks for Amount of a payment to be applied to an invoice.
type AllocationTarget struct {
	InvoiceID string          `json:"invoiceID"`
	Amount    decimal.Decimal `json:"amount"`
}

// PaymentAllocationResult is everything written by one allocation.
type PaymentAllocationResult struct {
	Payment     Payment               `json:"payment"`
	Allocations []PaymentAllocation   `json:"allocations"`
	Splits      []PaymentAccountSplit `json:"splits"`
	Credits     []Credit              `json:"credits"`
	Invoices    []Invoice             `json:"invoices"`
}

// PaymentDetail is a stored payment with its allocations and splits.
type PaymentDetail struct {
	Payment     Payment               `json:"payment"`
	Allocations []PaymentAllocation   `json:"allocations"`
	Splits      []PaymentAccountSplit `json:"splits"`
}
