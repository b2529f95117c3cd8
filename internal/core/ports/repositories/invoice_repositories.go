package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoices and their line items.
type InvoiceReader interface {
	// FindInvoiceByID returns apperrors.ErrInvoiceNotFound when the invoice does not exist.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoiceByIDForUpdate reads the invoice and locks it until the enclosing unit of work ends.
	// Only meaningful inside TransactionManager.Atomic.
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns invoices newest first (invoice_date DESC, created_at DESC, id DESC).
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, error)

	// ListLineItems returns an invoice's line items in insertion order.
	ListLineItems(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error)
}

// InvoiceWriter defines write operations for invoices.
type InvoiceWriter interface {
	// SaveInvoice persists a new invoice with its line items.
	// Returns apperrors.ErrDuplicate when the invoice number is taken.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, items []domain.InvoiceLineItem) error

	// UpdateInvoice overwrites the invoice header (totals, status, dates, notes).
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// ReplaceLineItems deletes the invoice's line items and inserts items in their place.
	ReplaceLineItems(ctx context.Context, invoiceID string, items []domain.InvoiceLineItem) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
