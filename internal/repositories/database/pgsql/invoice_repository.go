package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	BaseRepository
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

const invoiceColumns = `
	i.invoice_id, i.invoice_number, i.customer_id, i.quote_id, i.invoice_date, i.due_date,
	i.subtotal, i.discount_percentage, i.discount_amount, i.tax_amount, i.total_amount,
	i.paid_amount, i.balance_due, i.status, i.notes, i.created_at, i.updated_at`

func invoiceScanTargets(inv *domain.Invoice) []any {
	return []any{
		&inv.InvoiceID,
		&inv.InvoiceNumber,
		&inv.CustomerID,
		&inv.QuoteID,
		&inv.InvoiceDate,
		&inv.DueDate,
		&inv.Subtotal,
		&inv.DiscountPercentage,
		&inv.DiscountAmount,
		&inv.TaxAmount,
		&inv.TotalAmount,
		&inv.PaidAmount,
		&inv.BalanceDue,
		&inv.Status,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	}
}

func scanInvoiceSummary(row pgx.Row) (domain.InvoiceSummary, error) {
	var s domain.InvoiceSummary
	targets := append(invoiceScanTargets(&s.Invoice), &s.CustomerName, &s.CustomerEmail)
	err := row.Scan(targets...)
	return s, err
}

func (r *invoiceRepository) findInvoice(ctx context.Context, invoiceID string, lock bool) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices i WHERE i.invoice_id = $1`
	if lock {
		query += ` FOR UPDATE`
	}

	var inv domain.Invoice
	if err := r.db.QueryRow(ctx, query, invoiceID).Scan(invoiceScanTargets(&inv)...); err != nil {
		return nil, notFound(err, apperrors.ErrInvoiceNotFound, "invoice %s", invoiceID)
	}
	return &inv, nil
}

func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceID, false)
}

// FindInvoiceByIDForUpdate holds a row lock on the invoice until the transaction ends.
func (r *invoiceRepository) FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return r.findInvoice(ctx, invoiceID, true)
}

func (r *invoiceRepository) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]domain.InvoiceSummary, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conds = append(conds, "i.status = "+arg(*filter.Status))
	}
	if filter.CustomerID != nil {
		conds = append(conds, "i.customer_id = "+arg(*filter.CustomerID))
	}
	if filter.AfterDate != nil && filter.AfterCreatedAt != nil {
		conds = append(conds, fmt.Sprintf("(i.invoice_date, i.created_at, i.invoice_id) < (%s::date, %s, %s)",
			arg(*filter.AfterDate), arg(*filter.AfterCreatedAt), arg(filter.AfterID)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + invoiceColumns + `, c.name, c.email
		FROM invoices i
		JOIN contacts c ON c.contact_id = i.customer_id`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY i.invoice_date DESC, i.created_at DESC, i.invoice_id DESC")
	if filter.Limit > 0 {
		sb.WriteString(" LIMIT " + arg(filter.Limit))
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, dbError("failed to list invoices", err)
	}
	defer rows.Close()

	invoices := make([]domain.InvoiceSummary, 0)
	for rows.Next() {
		s, err := scanInvoiceSummary(rows)
		if err != nil {
			return nil, dbError("failed to scan invoice row", err)
		}
		invoices = append(invoices, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating invoice rows", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListLineItems(ctx context.Context, invoiceID string) ([]domain.InvoiceLineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, item_name, description, quantity, unit_price, line_total, created_at
		FROM invoice_line_items
		WHERE invoice_id = $1
		ORDER BY position ASC;
	`
	rows, err := r.db.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to list line items of invoice %s", invoiceID), err)
	}
	defer rows.Close()

	items := make([]domain.InvoiceLineItem, 0)
	for rows.Next() {
		var it domain.InvoiceLineItem
		if err := rows.Scan(
			&it.LineItemID,
			&it.InvoiceID,
			&it.ItemName,
			&it.Description,
			&it.Quantity,
			&it.UnitPrice,
			&it.LineTotal,
			&it.CreatedAt,
		); err != nil {
			return nil, dbError("failed to scan line item row", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating line item rows", err)
	}
	return items, nil
}

func (r *invoiceRepository) SaveInvoice(ctx context.Context, inv domain.Invoice, items []domain.InvoiceLineItem) error {
	query := `
		INSERT INTO invoices (
			invoice_id, invoice_number, customer_id, quote_id, invoice_date, due_date,
			subtotal, discount_percentage, discount_amount, tax_amount, total_amount,
			paid_amount, balance_due, status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.db.Exec(ctx, query,
		inv.InvoiceID,
		inv.InvoiceNumber,
		inv.CustomerID,
		inv.QuoteID,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Subtotal,
		inv.DiscountPercentage,
		inv.DiscountAmount,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.PaidAmount,
		inv.BalanceDue,
		inv.Status,
		inv.Notes,
		inv.CreatedAt,
		inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number %s: %w", inv.InvoiceNumber, apperrors.ErrDuplicate)
		}
		return dbError(fmt.Sprintf("failed to save invoice %s", inv.InvoiceNumber), err)
	}
	return r.insertLineItems(ctx, inv.InvoiceID, items)
}

func (r *invoiceRepository) insertLineItems(ctx context.Context, invoiceID string, items []domain.InvoiceLineItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO invoice_line_items
			(line_item_id, invoice_id, position, item_name, description, quantity, unit_price, line_total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for i, it := range items {
		batch.Queue(query, it.LineItemID, invoiceID, i, it.ItemName, it.Description, it.Quantity, it.UnitPrice, it.LineTotal, it.CreatedAt)
	}
	if err := execBatch(ctx, r.db, batch); err != nil {
		return dbError(fmt.Sprintf("failed to insert line items of invoice %s", invoiceID), err)
	}
	return nil
}

func (r *invoiceRepository) UpdateInvoice(ctx context.Context, inv domain.Invoice) error {
	query := `
		UPDATE invoices SET
			invoice_date = $2, due_date = $3, subtotal = $4, discount_percentage = $5,
			discount_amount = $6, tax_amount = $7, total_amount = $8, paid_amount = $9,
			balance_due = $10, status = $11, notes = $12, updated_at = $13
		WHERE invoice_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		inv.InvoiceID,
		inv.InvoiceDate,
		inv.DueDate,
		inv.Subtotal,
		inv.DiscountPercentage,
		inv.DiscountAmount,
		inv.TaxAmount,
		inv.TotalAmount,
		inv.PaidAmount,
		inv.BalanceDue,
		inv.Status,
		inv.Notes,
		inv.UpdatedAt,
	)
	if err != nil {
		return dbError(fmt.Sprintf("failed to update invoice %s", inv.InvoiceID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice %s: %w", inv.InvoiceID, apperrors.ErrInvoiceNotFound)
	}
	return nil
}

func (r *invoiceRepository) ReplaceLineItems(ctx context.Context, invoiceID string, items []domain.InvoiceLineItem) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM invoice_line_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return dbError(fmt.Sprintf("failed to delete line items of invoice %s", invoiceID), err)
	}
	return r.insertLineItems(ctx, invoiceID, items)
}
