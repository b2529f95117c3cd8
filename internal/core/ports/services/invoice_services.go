package services

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/dto"
)

// InvoiceWriterSvc defines write operations for invoices.
type InvoiceWriterSvc interface {
	// CreateInvoice computes totals and stores the invoice with its line items in one unit.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLineItem, error)

	// UpdateInvoice changes dates, pricing, notes, manual status or line items and re-derives totals.
	UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLineItem, error)
}

// InvoiceReaderSvc defines read operations for invoices.
type InvoiceReaderSvc interface {
	// GetInvoiceView reconstructs the invoice's full financial picture.
	GetInvoiceView(ctx context.Context, invoiceID string) (*domain.InvoiceView, error)

	// ListInvoices returns a page of invoices newest first and the token for the next page, if any.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.InvoiceSummary, *string, error)
}

// InvoiceSvcFacade combines all invoice service interfaces
type InvoiceSvcFacade interface {
	InvoiceWriterSvc
	InvoiceReaderSvc
}
