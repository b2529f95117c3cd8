package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
)

func (v *view) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	var (
		inv   domain.Invoice
		found bool
	)
	v.read(func(st *state) { inv, found = st.invoices[invoiceID] })
	if !found {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrInvoiceNotFound)
	}
	return &inv, nil
}

// FindInvoiceByIDForUpdate needs no row lock here: units of work are already serialized.
func (v *view) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return v.FindInvoiceByID(ctx, invoiceID)
}

func compareInvoicesNewestFirst(a, b domain.Invoice) int {
	if c := b.InvoiceDate.Compare(a.InvoiceDate); c != 0 {
		return c
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.InvoiceID, a.InvoiceID)
}

func afterCursor(inv domain.Invoice, filter domain.InvoiceFilter) bool {
	if filter.AfterDate == nil || filter.AfterCreatedAt == nil {
		return true
	}
	cursor := domain.Invoice{InvoiceID: filter.AfterID, InvoiceDate: *filter.AfterDate}
	cursor.CreatedAt = *filter.AfterCreatedAt
	return compareInvoicesNewestFirst(cursor, inv) < 0
}

func (v *view) ListInvoices(_ context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, error) {
	res := make([]domain.InvoiceSummary, 0)
	v.read(func(st *state) {
		for _, inv := range st.invoices {
			if filter.Status != nil && inv.Status != *filter.Status {
				continue
			}
			if filter.CustomerID != nil && inv.CustomerID != *filter.CustomerID {
				continue
			}
			if !afterCursor(inv, filter) {
				continue
			}
			customer := st.contacts[inv.CustomerID]
			res = append(res, domain.InvoiceSummary{
				Invoice:       inv,
				CustomerName:  customer.Name,
				CustomerEmail: customer.Email,
			})
		}
	})
	slices.SortFunc(res, func(a, b domain.InvoiceSummary) int {
		return compareInvoicesNewestFirst(a.Invoice, b.Invoice)
	})
	if filter.Limit > 0 && len(res) > filter.Limit {
		res = res[:filter.Limit]
	}
	return res, nil
}

func (v *view) ListLineItems(_ context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	var items []domain.InvoiceLineItem
	v.read(func(st *state) { items = slices.Clone(st.lineItems[invoiceID]) })
	if items == nil {
		items = make([]domain.InvoiceLineItem, 0)
	}
	return items, nil
}

func (v *view) SaveInvoice(_ context.Context, invoice domain.Invoice, items []domain.InvoiceLineItem) error {
	return v.write(func(st *state) error {
		if _, exists := st.invoices[invoice.InvoiceID]; exists {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrDuplicate)
		}
		if _, taken := st.invoiceNumbers[invoice.InvoiceNumber]; taken {
			return fmt.Errorf("invoice number %s: %w", invoice.InvoiceNumber, apperrors.ErrDuplicate)
		}
		if _, ok := st.contacts[invoice.CustomerID]; !ok {
			return fmt.Errorf("customer %s: %w", invoice.CustomerID, apperrors.ErrContactNotFound)
		}
		st.invoices[invoice.InvoiceID] = invoice
		st.invoiceNumbers[invoice.InvoiceNumber] = invoice.InvoiceID
		st.lineItems[invoice.InvoiceID] = slices.Clone(items)
		return nil
	})
}

func (v *view) UpdateInvoice(_ context.Context, invoice domain.Invoice) error {
	return v.write(func(st *state) error {
		existing, ok := st.invoices[invoice.InvoiceID]
		if !ok {
			return fmt.Errorf("invoice %s: %w", invoice.InvoiceID, apperrors.ErrInvoiceNotFound)
		}
		// number and customer are fixed at creation
		invoice.InvoiceNumber = existing.InvoiceNumber
		invoice.CustomerID = existing.CustomerID
		invoice.CreatedAt = existing.CreatedAt
		st.invoices[invoice.InvoiceID] = invoice
		return nil
	})
}

func (v *view) ReplaceLineItems(_ context.Context, invoiceID string, items []domain.InvoiceLineItem) error {
	return v.write(func(st *state) error {
		if _, ok := st.invoices[invoiceID]; !ok {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrInvoiceNotFound)
		}
		st.lineItems[invoiceID] = slices.Clone(items)
		return nil
	})
}
