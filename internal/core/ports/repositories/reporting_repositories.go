package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving report data
type ReportingRepository interface {
	// ListOpenInvoices returns every invoice with a positive balance that is not cancelled,
	// ordered by due date then invoice number.
	ListOpenInvoices(ctx context.Context) ([]domain.InvoiceSummary, error)
}
