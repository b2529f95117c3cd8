package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// GetInvoiceView reconstructs an invoice with everything that touched it. Each related
// collection is read on its own and stitched together by key, so nothing here depends on
// the storage backend's join support.
func (s *invoiceService) GetInvoiceView(ctx context.Context, invoiceID string) (*domain.InvoiceView, error) {
	repos := s.store

	invoice, err := repos.Invoices().FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to find invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, err
	}

	// A missing customer or quote leaves its block empty; only the invoice itself is required.
	customer, err := repos.Contacts().FindContactByID(ctx, invoice.CustomerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.viewFailure(ctx, invoiceID, "customer", err)
		}
		s.LogWarn(ctx, err, "Invoice customer not found", slog.String("invoice_id", invoiceID))
		customer = nil
	}

	var quote *domain.Quote
	if invoice.QuoteID != nil {
		if quote, err = repos.Quotes().FindQuoteByID(ctx, *invoice.QuoteID); err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				return nil, s.viewFailure(ctx, invoiceID, "quote", err)
			}
			s.LogWarn(ctx, err, "Invoice quote not found", slog.String("invoice_id", invoiceID))
			quote = nil
		}
	}

	lineItems, err := repos.Invoices().ListLineItems(ctx, invoiceID)
	if err != nil {
		return nil, s.viewFailure(ctx, invoiceID, "line items", err)
	}

	allocations, err := repos.Payments().ListAllocationsByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, s.viewFailure(ctx, invoiceID, "allocations", err)
	}

	paymentIDs := make([]string, 0, len(allocations))
	for _, a := range allocations {
		if !slices.Contains(paymentIDs, a.PaymentID) {
			paymentIDs = append(paymentIDs, a.PaymentID)
		}
	}

	payments := map[string]domain.Payment{}
	var splits []domain.PaymentAccountSplit
	if len(paymentIDs) > 0 {
		if payments, err = repos.Payments().FindPaymentsByIDs(ctx, paymentIDs); err != nil {
			return nil, s.viewFailure(ctx, invoiceID, "payments", err)
		}
		if splits, err = repos.Payments().ListSplitsByPaymentIDs(ctx, paymentIDs); err != nil {
			return nil, s.viewFailure(ctx, invoiceID, "account splits", err)
		}
	}

	credits, err := repos.Credits().ListCreditsMentioning(ctx, invoice.CustomerID, domain.Customer, invoice.InvoiceNumber)
	if err != nil {
		return nil, s.viewFailure(ctx, invoiceID, "credits", err)
	}

	view := assembleInvoiceView(*invoice, customer, quote, lineItems, allocations, payments, splits, credits)
	view.Aging = accounting.ClassifyAging(view.Invoice.DueDate, s.Today(), view.Invoice.BalanceDue)

	s.LogDebug(ctx, "Invoice view built",
		slog.String("invoice_id", invoiceID),
		slog.Int("payments", len(view.Payments)),
		slog.Int("credits", len(view.Credits)))
	return view, nil
}

func (s *invoiceService) viewFailure(ctx context.Context, invoiceID, part string, err error) error {
	s.LogError(ctx, err, "Failed to load invoice view", slog.String("invoice_id", invoiceID), slog.String("part", part))
	return apperrors.NewAppError(500, fmt.Sprintf("failed to load %s of invoice %s", part, invoiceID), err)
}

// assembleInvoiceView merges the independently fetched rows. It does no I/O.
func assembleInvoiceView(
	invoice domain.Invoice,
	customer *domain.Contact,
	quote *domain.Quote,
	lineItems []domain.InvoiceLineItem,
	allocations []domain.PaymentAllocation,
	payments map[string]domain.Payment,
	splits []domain.PaymentAccountSplit,
	credits []domain.Credit,
) *domain.InvoiceView {
	splitsByPayment := make(map[string][]domain.PaymentAccountSplit, len(payments))
	for _, sp := range splits {
		sp.Amount = domain.RoundMoney(sp.Amount)
		splitsByPayment[sp.PaymentID] = append(splitsByPayment[sp.PaymentID], sp)
	}
	for id := range splitsByPayment {
		slices.SortStableFunc(splitsByPayment[id], func(a, b domain.PaymentAccountSplit) int {
			return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.SplitID, b.SplitID))
		})
	}

	invoicePayments := make([]domain.InvoicePayment, 0, len(allocations))
	allocated := make([]decimal.Decimal, 0, len(allocations))
	for _, a := range allocations {
		payment, ok := payments[a.PaymentID]
		if !ok {
			continue
		}
		payment.Amount = domain.RoundMoney(payment.Amount)
		paymentSplits := splitsByPayment[a.PaymentID]
		if paymentSplits == nil {
			paymentSplits = []domain.PaymentAccountSplit{}
		}
		invoicePayments = append(invoicePayments, domain.InvoicePayment{
			Payment:         payment,
			AllocationID:    a.AllocationID,
			AllocatedAmount: domain.RoundMoney(a.AllocatedAmount),
			AllocatedAt:     a.CreatedAt,
			AccountSplits:   paymentSplits,
		})
		allocated = append(allocated, a.AllocatedAmount)
	}
	// Newest payment first; allocation id keeps the order total.
	slices.SortStableFunc(invoicePayments, func(a, b domain.InvoicePayment) int {
		return cmp.Or(
			b.PaymentDate.Compare(a.PaymentDate),
			b.AllocatedAt.Compare(a.AllocatedAt),
			cmp.Compare(a.AllocationID, b.AllocationID),
		)
	})

	items := slices.Clone(lineItems)
	if items == nil {
		items = []domain.InvoiceLineItem{}
	}
	for i := range items {
		items[i].UnitPrice = domain.RoundMoney(items[i].UnitPrice)
		items[i].LineTotal = domain.RoundMoney(items[i].LineTotal)
	}

	matched := make([]domain.Credit, 0, len(credits))
	for _, c := range credits {
		if !c.MentionsInvoice(invoice.InvoiceNumber) {
			continue
		}
		c.Amount = domain.RoundMoney(c.Amount)
		matched = append(matched, c)
	}
	slices.SortStableFunc(matched, func(a, b domain.Credit) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.CreditID, b.CreditID))
	})

	invoice.Subtotal = domain.RoundMoney(invoice.Subtotal)
	invoice.DiscountAmount = domain.RoundMoney(invoice.DiscountAmount)
	invoice.TaxAmount = domain.RoundMoney(invoice.TaxAmount)
	invoice.TotalAmount = domain.RoundMoney(invoice.TotalAmount)
	invoice.PaidAmount = domain.RoundMoney(invoice.PaidAmount)
	invoice.BalanceDue = domain.RoundMoney(invoice.BalanceDue)

	return &domain.InvoiceView{
		Invoice:   invoice,
		Customer:  customer,
		Quote:     quote,
		LineItems: items,
		Payments:  invoicePayments,
		PaymentSummary: domain.PaymentSummary{
			TotalPayments:    len(invoicePayments),
			TotalAllocated:   domain.SumMoney(allocated...),
			RemainingBalance: invoice.BalanceDue,
		},
		Credits: matched,
	}
}
