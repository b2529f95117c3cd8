package pgsql

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
)

type reportingRepository struct {
	BaseRepository
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// ListOpenInvoices returns every invoice that still has money owed on it.
func (r *reportingRepository) ListOpenInvoices(ctx context.Context) ([]domain.InvoiceSummary, error) {
	query := `
		SELECT ` + invoiceColumns + `, c.name, c.email
		FROM invoices i
		JOIN contacts c ON c.contact_id = i.customer_id
		WHERE i.status <> 'cancelled' AND i.balance_due > 0
		ORDER BY i.due_date ASC, i.invoice_number ASC;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, dbError("failed to list open invoices", err)
	}
	defer rows.Close()

	invoices := make([]domain.InvoiceSummary, 0)
	for rows.Next() {
		s, err := scanInvoiceSummary(rows)
		if err != nil {
			return nil, dbError("failed to scan open invoice row", err)
		}
		invoices = append(invoices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating open invoice rows", err)
	}
	return invoices, nil
}
