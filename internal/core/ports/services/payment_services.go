package services

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/dto"
)

// PaymentSvcFacade records payments and distributes them across invoices.
type PaymentSvcFacade interface {
	// AllocatePayment records the payment, applies it to the target invoices, credits any excess
	// and posts the cash to the ledger, all in one unit.
	AllocatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.PaymentAllocationResult, error)

	// GetPayment returns a stored payment with its allocations and splits.
	GetPayment(ctx context.Context, paymentID string) (*domain.PaymentDetail, error)
}
