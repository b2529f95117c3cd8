package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// QuoteReader reads quotes. Quotes are managed elsewhere and only referenced by invoices.
type QuoteReader interface {
	// FindQuoteByID returns apperrors.ErrNotFound when the quote does not exist.
	FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error)
}
