package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/SscSPs/books_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultInvoicePageSize = 20

type invoiceService struct {
	BaseService
	store portsrepo.Store
}

// NewInvoiceService creates the invoice service.
func NewInvoiceService(store portsrepo.Store, options ...ServiceOption) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// priceLineItems fills in ids, line totals and timestamps from computed totals.
func priceLineItems(invoiceID string, items []domain.InvoiceLineItem, totals domain.InvoiceTotals, now time.Time) []domain.InvoiceLineItem {
	priced := make([]domain.InvoiceLineItem, len(items))
	for i, item := range items {
		item.LineItemID = uuid.NewString()
		item.InvoiceID = invoiceID
		item.ItemName = strings.TrimSpace(item.ItemName)
		item.UnitPrice = domain.RoundMoney(item.UnitPrice)
		item.LineTotal = totals.LineTotals[i]
		item.CreatedAt = now
		priced[i] = item
	}
	return priced
}

func checkInvoiceDates(invoiceDate, dueDate time.Time) error {
	if dueDate.Before(invoiceDate) {
		return fmt.Errorf("%w: due date %s is before invoice date %s", apperrors.ErrValidation,
			dueDate.Format(dto.DateLayout), invoiceDate.Format(dto.DateLayout))
	}
	return nil
}

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, nil, fmt.Errorf("%w: invoice number is required", apperrors.ErrValidation)
	}

	invoiceDate := req.InvoiceDate.Time
	if invoiceDate.IsZero() {
		invoiceDate = s.Today()
	}
	dueDate := req.DueDate.Time
	if dueDate.IsZero() {
		dueDate = invoiceDate
	}
	if err := checkInvoiceDates(invoiceDate, dueDate); err != nil {
		return nil, nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceDraft
	}
	if status != domain.InvoiceDraft && status != domain.InvoiceSent {
		return nil, nil, fmt.Errorf("%w: a new invoice must be draft or sent, got %q", apperrors.ErrValidation, status)
	}

	items := dto.ToDomainLineItems(req.LineItems)
	totals, err := accounting.ComputeTotals(items, req.DiscountPercentage, req.TaxAmount)
	if err != nil {
		return nil, nil, err
	}

	now := s.Now()
	invoice := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: number,
		CustomerID:    req.CustomerID,
		QuoteID:       req.QuoteID,
		InvoiceDate:   invoiceDate,
		DueDate:       dueDate,
		PaidAmount:    decimal.Zero,
		Status:        status,
		Notes:         req.Notes,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	invoice.ApplyTotals(req.DiscountPercentage, totals)
	lineItems := priceLineItems(invoice.InvoiceID, items, totals, now)

	err = s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		customer, err := repos.Contacts().FindContactByID(ctx, invoice.CustomerID)
		if err != nil {
			return err
		}
		if customer.ContactType != domain.Customer {
			return fmt.Errorf("%w: contact %s is a %s, not a customer", apperrors.ErrValidation, customer.ContactID, customer.ContactType)
		}
		if invoice.QuoteID != nil {
			if _, err := repos.Quotes().FindQuoteByID(ctx, *invoice.QuoteID); err != nil {
				return fmt.Errorf("quote %s: %w", *invoice.QuoteID, err)
			}
		}
		if err := repos.Invoices().SaveInvoice(ctx, invoice, lineItems); err != nil {
			return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceNumber, err)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to create invoice", slog.String("invoice_number", number))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Invoice created successfully",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", invoice.TotalAmount.String()))
	return &invoice, lineItems, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, []domain.InvoiceLineItem, error) {
	if req.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	if req.Status != nil && !req.Status.IsManual() {
		return nil, nil, fmt.Errorf("%w: status %q is derived from payments and cannot be set", apperrors.ErrValidation, *req.Status)
	}

	var (
		invoice   *domain.Invoice
		lineItems []domain.InvoiceLineItem
	)
	err := s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		invoice, err = repos.Invoices().FindInvoiceByIDForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == domain.InvoiceCancelled {
			return fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrConflict, invoice.InvoiceNumber)
		}

		if req.InvoiceDate != nil && !req.InvoiceDate.IsZero() {
			invoice.InvoiceDate = req.InvoiceDate.Time
		}
		if req.DueDate != nil && !req.DueDate.IsZero() {
			invoice.DueDate = req.DueDate.Time
		}
		if err := checkInvoiceDates(invoice.InvoiceDate, invoice.DueDate); err != nil {
			return err
		}
		if req.Notes != nil {
			invoice.Notes = *req.Notes
		}

		now := s.Now()
		replaceItems := req.LineItems != nil
		if replaceItems || req.DiscountPercentage != nil || req.TaxAmount != nil {
			var items []domain.InvoiceLineItem
			if replaceItems {
				items = dto.ToDomainLineItems(req.LineItems)
			} else if items, err = repos.Invoices().ListLineItems(ctx, invoiceID); err != nil {
				return fmt.Errorf("failed to load line items: %w", err)
			}

			discountPct := invoice.DiscountPercentage
			if req.DiscountPercentage != nil {
				discountPct = *req.DiscountPercentage
			}
			tax := invoice.TaxAmount
			if req.TaxAmount != nil {
				tax = *req.TaxAmount
			}

			totals, err := accounting.ComputeTotals(items, discountPct, tax)
			if err != nil {
				return err
			}
			if totals.TotalAmount.LessThan(invoice.PaidAmount) {
				return fmt.Errorf("%w: new total %s is below the %s already paid", apperrors.ErrValidation,
					totals.TotalAmount, invoice.PaidAmount)
			}
			invoice.ApplyTotals(discountPct, totals)
			if replaceItems {
				lineItems = priceLineItems(invoiceID, items, totals, now)
			}
		}

		// Once money is applied the status follows the payments and can no longer be set by hand.
		if req.Status != nil && invoice.PaidAmount.IsPositive() {
			return fmt.Errorf("%w: invoice %s has payments applied, status %q cannot be set",
				apperrors.ErrConflict, invoice.InvoiceNumber, *req.Status)
		}
		switch {
		case req.Status != nil:
			invoice.Status = *req.Status
		case invoice.PaidAmount.IsPositive() && invoice.BalanceDue.IsZero():
			invoice.Status = domain.InvoicePaid
		case invoice.PaidAmount.IsPositive():
			invoice.Status = domain.InvoicePartial
		}

		invoice.Touch(now)
		if err := repos.Invoices().UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		if replaceItems {
			if err := repos.Invoices().ReplaceLineItems(ctx, invoiceID, lineItems); err != nil {
				return fmt.Errorf("failed to replace line items of invoice %s: %w", invoiceID, err)
			}
			return nil
		}
		lineItems, err = repos.Invoices().ListLineItems(ctx, invoiceID)
		return err
	})
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, nil, err
	}

	s.LogInfo(ctx, "Invoice updated successfully",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(invoice.Status)))
	return invoice, lineItems, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.InvoiceSummary, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultInvoicePageSize
	}

	filter := domain.InvoiceFilter{Limit: limit + 1}
	if params.Status != "" {
		status := domain.InvoiceStatus(params.Status)
		if !status.IsValid() {
			return nil, nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if params.CustomerID != "" {
		filter.CustomerID = &params.CustomerID
	}
	if params.NextToken != "" {
		cursor, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid next token: %v", apperrors.ErrValidation, err)
		}
		filter.AfterDate = &cursor.Date
		filter.AfterCreatedAt = &cursor.CreatedAt
		filter.AfterID = cursor.ID
	}

	invoices, err := s.store.Invoices().ListInvoices(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.InvoiceSummary{}
	}

	var nextToken *string
	if len(invoices) > limit {
		invoices = invoices[:limit]
		last := invoices[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			Date:      last.InvoiceDate,
			CreatedAt: last.CreatedAt,
			ID:        last.InvoiceID,
		})
		nextToken = &token
	}
	return invoices, nextToken, nil
}
