package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePartial   InvoiceStatus = "partial"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceOverdue   InvoiceStatus = "overdue"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePartial, InvoicePaid, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// IsManual reports whether s may be set directly by a user rather than derived from payments.
func (s InvoiceStatus) IsManual() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoiceOverdue, InvoiceCancelled:
		return true
	}
	return false
}

// Invoice is a bill issued to a customer.
//
// TotalAmount = Subtotal - DiscountAmount + TaxAmount and BalanceDue = TotalAmount - PaidAmount
// hold after every mutation.
type Invoice struct {
	InvoiceID          string          `json:"invoiceID"`
	InvoiceNumber      string          `json:"invoiceNumber"`
	CustomerID         string          `json:"customerID"`
	QuoteID            *string         `json:"quoteID,omitempty"`
	InvoiceDate        time.Time       `json:"invoiceDate"`
	DueDate            time.Time       `json:"dueDate"`
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	BalanceDue         decimal.Decimal `json:"balanceDue"`
	Status             InvoiceStatus   `json:"status"`
	Notes              string          `json:"notes"`
	AuditFields
}

// InvoiceLineItem is one billed item. LineTotal = Quantity * UnitPrice, rounded.
type InvoiceLineItem struct {
	LineItemID  string          `json:"lineItemID"`
	InvoiceID   string          `json:"invoiceID"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InvoiceTotals is the output of the totals calculation.
type InvoiceTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	// LineTotals is aligned with the input line items.
	LineTotals []decimal.Decimal
}

// ApplyTotals stores computed totals on the invoice and re-derives BalanceDue.
func (inv *Invoice) ApplyTotals(discountPct decimal.Decimal, t InvoiceTotals) {
	inv.Subtotal = t.Subtotal
	inv.DiscountPercentage = discountPct
	inv.DiscountAmount = t.DiscountAmount
	inv.TaxAmount = t.TaxAmount
	inv.TotalAmount = t.TotalAmount
	inv.BalanceDue = RoundMoney(inv.TotalAmount.Sub(inv.PaidAmount))
}

// ApplyPayment records amount as paid and moves the status to partial or paid.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal) {
	inv.PaidAmount = RoundMoney(inv.PaidAmount.Add(amount))
	inv.BalanceDue = RoundMoney(inv.TotalAmount.Sub(inv.PaidAmount))
	switch {
	case inv.BalanceDue.IsZero():
		inv.Status = InvoicePaid
	case inv.PaidAmount.IsPositive():
		inv.Status = InvoicePartial
	}
}

// IsBalanced reports whether BalanceDue == TotalAmount - PaidAmount.
func (inv Invoice) IsBalanced() bool {
	return inv.BalanceDue.Equal(inv.TotalAmount.Sub(inv.PaidAmount))
}

// IsOpen reports whether the invoice still has money owed on it.
func (inv Invoice) IsOpen() bool {
	return inv.Status != InvoiceCancelled && inv.BalanceDue.IsPositive()
}

// InvoiceSummary is an invoice as it appears in listings, with its customer's name and email.
type InvoiceSummary struct {
	Invoice
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// InvoiceFilter narrows invoice listings. Cursor values come from a pagination token.
type InvoiceFilter struct {
	Status         *InvoiceStatus
	CustomerID     *string
	Limit          int
	AfterDate      *time.Time
	AfterCreatedAt *time.Time
	AfterID        string
}
