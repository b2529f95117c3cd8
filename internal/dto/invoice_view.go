package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceCustomerResponse is the customer block of an invoice view.
type InvoiceCustomerResponse struct {
	ContactID string `json:"contactID"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// InvoiceQuoteResponse is the quote an invoice was raised from.
type InvoiceQuoteResponse struct {
	QuoteID     string `json:"quoteID"`
	QuoteNumber string `json:"quoteNumber"`
	QuoteDate   Date   `json:"quoteDate"`
}

// AccountSplitResponse says where part of a payment landed.
type AccountSplitResponse struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoicePaymentResponse is a payment as seen from one invoice.
type InvoicePaymentResponse struct {
	PaymentID       string                 `json:"paymentID"`
	PaymentNumber   string                 `json:"paymentNumber"`
	PaymentDate     Date                   `json:"paymentDate"`
	PaymentMethod   string                 `json:"paymentMethod"`
	ReferenceNumber string                 `json:"referenceNumber"`
	PaymentNotes    string                 `json:"paymentNotes"`
	AllocatedAmount decimal.Decimal        `json:"allocatedAmount"`
	AllocationDate  time.Time              `json:"allocationDate"`
	AccountSplits   []AccountSplitResponse `json:"accountSplits"`
}

// PaymentSummaryResponse totals the payments applied to an invoice.
type PaymentSummaryResponse struct {
	TotalPayments    int             `json:"totalPayments"`
	TotalAllocated   decimal.Decimal `json:"totalAllocated"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// AgingResponse is the age classification of an invoice.
type AgingResponse struct {
	DaysPastDue int    `json:"daysPastDue"`
	AgingBucket string `json:"agingBucket"`
	IsOverdue   bool   `json:"isOverdue"`
}

// InvoiceViewResponse is the full reconstructed picture of one invoice.
type InvoiceViewResponse struct {
	InvoiceID      string                   `json:"invoiceID"`
	InvoiceNumber  string                   `json:"invoiceNumber"`
	InvoiceDate    Date                     `json:"invoiceDate"`
	DueDate        Date                     `json:"dueDate"`
	Status         string                   `json:"status"`
	Notes          string                   `json:"notes"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
	Customer       *InvoiceCustomerResponse `json:"customer"`
	Quote          *InvoiceQuoteResponse    `json:"quote"`
	Totals         InvoiceTotalsResponse    `json:"totals"`
	LineItems      []LineItemResponse       `json:"lineItems"`
	Payments       []InvoicePaymentResponse `json:"payments"`
	PaymentSummary PaymentSummaryResponse   `json:"paymentSummary"`
	Credits        []CreditResponse         `json:"credits"`
	Aging          AgingResponse            `json:"aging"`
}

// ToAccountSplitResponses converts payment splits to DTOs.
func ToAccountSplitResponses(splits []domain.PaymentAccountSplit) []AccountSplitResponse {
	res := make([]AccountSplitResponse, len(splits))
	for i, s := range splits {
		res[i] = AccountSplitResponse{
			AccountID:   s.AccountID,
			AccountName: s.AccountName,
			AccountType: string(s.AccountType),
			Amount:      domain.RoundMoney(s.Amount),
		}
	}
	return res
}

// ToAgingResponse converts a domain.Aging to its DTO.
func ToAgingResponse(a domain.Aging) AgingResponse {
	return AgingResponse{DaysPastDue: a.DaysPastDue, AgingBucket: string(a.Bucket), IsOverdue: a.IsOverdue}
}

// ToInvoiceViewResponse converts a domain.InvoiceView to InvoiceViewResponse DTO
func ToInvoiceViewResponse(v *domain.InvoiceView) InvoiceViewResponse {
	inv := &v.Invoice
	res := InvoiceViewResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   NewDate(inv.InvoiceDate),
		DueDate:       NewDate(inv.DueDate),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Totals:        toInvoiceTotalsResponse(inv),
		LineItems:     ToLineItemResponses(v.LineItems),
		Payments:      make([]InvoicePaymentResponse, len(v.Payments)),
		PaymentSummary: PaymentSummaryResponse{
			TotalPayments:    v.PaymentSummary.TotalPayments,
			TotalAllocated:   v.PaymentSummary.TotalAllocated,
			RemainingBalance: v.PaymentSummary.RemainingBalance,
		},
		Credits: ToCreditResponses(v.Credits),
		Aging:   ToAgingResponse(v.Aging),
	}
	if v.Customer != nil {
		res.Customer = &InvoiceCustomerResponse{
			ContactID: v.Customer.ContactID,
			Name:      v.Customer.Name,
			Email:     v.Customer.Email,
			Phone:     v.Customer.Phone,
			Address:   v.Customer.Address,
		}
	}
	if v.Quote != nil {
		res.Quote = &InvoiceQuoteResponse{
			QuoteID:     v.Quote.QuoteID,
			QuoteNumber: v.Quote.QuoteNumber,
			QuoteDate:   NewDate(v.Quote.QuoteDate),
		}
	}
	for i, p := range v.Payments {
		res.Payments[i] = InvoicePaymentResponse{
			PaymentID:       p.PaymentID,
			PaymentNumber:   p.PaymentNumber,
			PaymentDate:     NewDate(p.PaymentDate),
			PaymentMethod:   p.PaymentMethod,
			ReferenceNumber: p.ReferenceNumber,
			PaymentNotes:    p.Notes,
			AllocatedAmount: domain.RoundMoney(p.AllocatedAmount),
			AllocationDate:  p.AllocatedAt,
			AccountSplits:   ToAccountSplitResponses(p.AccountSplits),
		}
	}
	return res
}
