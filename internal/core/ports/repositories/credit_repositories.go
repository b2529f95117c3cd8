package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// CreditReader defines read operations for credits. Credits are returned newest first with
// PaymentNumber filled in when they reference a payment.
type CreditReader interface {
	ListCreditsByContact(ctx context.Context, contactID string) ([]domain.Credit, error)

	// ListCreditsMentioning returns the contact's credits whose description names text as a
	// whole token (see domain.Credit.MentionsInvoice).
	ListCreditsMentioning(ctx context.Context, contactID string, contactType domain.ContactType, text string) ([]domain.Credit, error)
}

// CreditWriter defines write operations for credits.
type CreditWriter interface {
	SaveCredit(ctx context.Context, credit domain.Credit) error
}

// CreditRepositoryFacade combines all credit repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
}
