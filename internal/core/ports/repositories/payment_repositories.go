package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// PaymentReader defines read operations for payments, allocations and splits.
type PaymentReader interface {
	// FindPaymentByID returns apperrors.ErrPaymentNotFound when the payment does not exist.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindPaymentsByIDs returns the payments that exist, keyed by id.
	FindPaymentsByIDs(ctx context.Context, paymentIDs []string) (map[string]domain.Payment, error)

	// ListAllocationsByInvoice returns allocations whose reference is the invoice, oldest first.
	ListAllocationsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentAllocation, error)

	// ListAllocationsByPayment returns a payment's allocations, oldest first.
	ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error)

	// ListSplitsByPaymentIDs returns the splits of the given payments with account name and type filled in.
	ListSplitsByPaymentIDs(ctx context.Context, paymentIDs []string) ([]domain.PaymentAccountSplit, error)
}

// PaymentWriter defines write operations for payments. All rows are immutable once written.
type PaymentWriter interface {
	// SavePayment returns apperrors.ErrDuplicate when the payment number is taken.
	SavePayment(ctx context.Context, payment domain.Payment) error
	SaveAllocation(ctx context.Context, allocation domain.PaymentAllocation) error
	SaveSplit(ctx context.Context, split domain.PaymentAccountSplit) error
}

// PaymentRepositoryFacade combines all payment repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
