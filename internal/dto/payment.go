package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationTargetRequest asks for part of a payment to be applied to an invoice.
type AllocationTargetRequest struct {
	InvoiceID string          `json:"invoiceID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"decimal_gt0"`
}

// CreatePaymentRequest records a payment and allocates it across invoices.
type CreatePaymentRequest struct {
	PaymentNumber   string          `json:"paymentNumber" binding:"required"`
	PaymentDate     Date            `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod" binding:"required"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	ContactID       string          `json:"contactID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	// DepositAccountID receives the cash applied to invoices.
	DepositAccountID string `json:"depositAccountID" binding:"required"`
	// UnappliedAccountID receives cash that was credited or left unallocated.
	// Falls back to the configured unapplied funds account.
	UnappliedAccountID string                    `json:"unappliedAccountID"`
	OverpaymentPolicy  domain.OverpaymentPolicy  `json:"overpaymentPolicy" binding:"omitempty,oneof=credit reject"`
	Allocations        []AllocationTargetRequest `json:"allocations" binding:"dive"`
}

// Targets converts the requested allocations to domain targets.
func (r CreatePaymentRequest) Targets() []domain.AllocationTarget {
	res := make([]domain.AllocationTarget, len(r.Allocations))
	for i, a := range r.Allocations {
		res[i] = domain.AllocationTarget{InvoiceID: a.InvoiceID, Amount: a.Amount}
	}
	return res
}

// PaymentResponse defines the data returned for a payment.
type PaymentResponse struct {
	PaymentID       string          `json:"paymentID"`
	PaymentNumber   string          `json:"paymentNumber"`
	PaymentDate     Date            `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	ContactID       string          `json:"contactID"`
	Amount          decimal.Decimal `json:"amount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// AllocationResponse defines the data returned for a payment allocation.
type AllocationResponse struct {
	AllocationID    string          `json:"allocationID"`
	ReferenceType   string          `json:"referenceType"`
	ReferenceID     string          `json:"referenceID"`
	AllocatedAmount decimal.Decimal `json:"allocatedAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// PaymentDetailResponse is a payment with its allocations and splits.
type PaymentDetailResponse struct {
	PaymentResponse
	Allocations   []AllocationResponse   `json:"allocations"`
	AccountSplits []AccountSplitResponse `json:"accountSplits"`
}

// AllocatePaymentResponse is everything written by a payment allocation.
type AllocatePaymentResponse struct {
	PaymentDetailResponse
	Credits  []CreditResponse  `json:"credits"`
	Invoices []InvoiceResponse `json:"invoices"`
}

// ToPaymentResponse converts a domain.Payment to PaymentResponse DTO
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:       p.PaymentID,
		PaymentNumber:   p.PaymentNumber,
		PaymentDate:     NewDate(p.PaymentDate),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
		ContactID:       p.ContactID,
		Amount:          domain.RoundMoney(p.Amount),
		CreatedAt:       p.CreatedAt,
	}
}

// ToAllocationResponses converts allocations to DTOs.
func ToAllocationResponses(allocs []domain.PaymentAllocation) []AllocationResponse {
	res := make([]AllocationResponse, len(allocs))
	for i, a := range allocs {
		res[i] = AllocationResponse{
			AllocationID:    a.AllocationID,
			ReferenceType:   string(a.ReferenceType),
			ReferenceID:     a.ReferenceID,
			AllocatedAmount: domain.RoundMoney(a.AllocatedAmount),
			CreatedAt:       a.CreatedAt,
		}
	}
	return res
}

// ToPaymentDetailResponse converts a stored payment with its rows.
func ToPaymentDetailResponse(d *domain.PaymentDetail) PaymentDetailResponse {
	return PaymentDetailResponse{
		PaymentResponse: ToPaymentResponse(&d.Payment),
		Allocations:     ToAllocationResponses(d.Allocations),
		AccountSplits:   ToAccountSplitResponses(d.Splits),
	}
}

// ToAllocatePaymentResponse converts the result of an allocation.
func ToAllocatePaymentResponse(r *domain.PaymentAllocationResult) AllocatePaymentResponse {
	res := AllocatePaymentResponse{
		PaymentDetailResponse: ToPaymentDetailResponse(&domain.PaymentDetail{
			Payment:     r.Payment,
			Allocations: r.Allocations,
			Splits:      r.Splits,
		}),
		Credits:  ToCreditResponses(r.Credits),
		Invoices: make([]InvoiceResponse, len(r.Invoices)),
	}
	for i, inv := range r.Invoices {
		res.Invoices[i] = ToInvoiceResponse(&inv)
	}
	return res
}
