package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/SscSPs/books_backend/internal/core/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoice_ComputesTotals(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")

	inv, items, err := f.svc.Invoice.CreateInvoice(f.ctx, dto.CreateInvoiceRequest{
		InvoiceNumber:      "INV-100",
		CustomerID:         cust.ContactID,
		InvoiceDate:        dto.NewDate(date(2024, 3, 1)),
		DueDate:            dto.NewDate(date(2024, 3, 31)),
		DiscountPercentage: dec("10"),
		TaxAmount:          dec("50"),
		LineItems: []dto.LineItemRequest{
			{ItemName: "Widget", Quantity: dec("4"), UnitPrice: dec("125")},
			{ItemName: "Support", Quantity: dec("2"), UnitPrice: dec("250")},
		},
	})
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(dec("1000")))
	assert.True(t, inv.DiscountAmount.Equal(dec("100")))
	assert.True(t, inv.TotalAmount.Equal(dec("950")))
	assert.True(t, inv.BalanceDue.Equal(dec("950")))
	assert.True(t, inv.PaidAmount.IsZero())
	assert.Equal(t, domain.InvoiceDraft, inv.Status)

	require.Len(t, items, 2)
	assert.True(t, items[0].LineTotal.Equal(dec("500")))
	assert.Equal(t, inv.InvoiceID, items[1].InvoiceID)
}

func TestCreateInvoice_Errors(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	vendor, err := f.svc.Contact.CreateContact(f.ctx, domain.Vendor, dto.CreateContactRequest{Name: "Supplies Inc"})
	require.NoError(t, err)
	f.invoice(cust.ContactID, "INV-DUP", "10", date(2024, 4, 1))
	missingQuote := "missing"

	base := func() dto.CreateInvoiceRequest {
		return dto.CreateInvoiceRequest{
			InvoiceNumber: "INV-200",
			CustomerID:    cust.ContactID,
			LineItems:     []dto.LineItemRequest{{ItemName: "Widget", Quantity: dec("1"), UnitPrice: dec("10")}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*dto.CreateInvoiceRequest)
		wantErr error
	}{
		{"no line items", func(r *dto.CreateInvoiceRequest) { r.LineItems = nil }, apperrors.ErrEmptyInvoice},
		{"negative tax", func(r *dto.CreateInvoiceRequest) { r.TaxAmount = dec("-1") }, apperrors.ErrInvalidAmount},
		{"zero quantity", func(r *dto.CreateInvoiceRequest) { r.LineItems[0].Quantity = dec("0") }, apperrors.ErrInvalidAmount},
		{"due before invoice date", func(r *dto.CreateInvoiceRequest) {
			r.InvoiceDate = dto.NewDate(date(2024, 3, 10))
			r.DueDate = dto.NewDate(date(2024, 3, 1))
		}, apperrors.ErrValidation},
		{"unknown customer", func(r *dto.CreateInvoiceRequest) { r.CustomerID = "missing" }, apperrors.ErrContactNotFound},
		{"vendor as customer", func(r *dto.CreateInvoiceRequest) { r.CustomerID = vendor.ContactID }, apperrors.ErrValidation},
		{"unknown quote", func(r *dto.CreateInvoiceRequest) { r.QuoteID = &missingQuote }, apperrors.ErrNotFound},
		{"duplicate number", func(r *dto.CreateInvoiceRequest) { r.InvoiceNumber = "INV-DUP" }, apperrors.ErrDuplicate},
		{"paid status", func(r *dto.CreateInvoiceRequest) { r.Status = domain.InvoicePaid }, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base()
			tt.mutate(&req)
			inv, _, err := f.svc.Invoice.CreateInvoice(f.ctx, req)
			assert.Nil(t, inv)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateInvoice_RecomputesTotalsKeepingPayments(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "1000", date(2024, 4, 1))
	_, err := f.pay("PAY-001", cust.ContactID, "400", target(inv.InvoiceID, "400"))
	require.NoError(t, err)

	tax := dec("100")
	updated, items, err := f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{TaxAmount: &tax})
	require.NoError(t, err)
	assert.True(t, updated.TotalAmount.Equal(dec("1100")))
	assert.True(t, updated.PaidAmount.Equal(dec("400")))
	assert.True(t, updated.BalanceDue.Equal(dec("700")))
	assert.Equal(t, domain.InvoicePartial, updated.Status)
	assert.Len(t, items, 1)

	// Replacing the lines with something cheaper than what was paid is refused.
	_, _, err = f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{
		LineItems: []dto.LineItemRequest{{ItemName: "Discounted", Quantity: dec("1"), UnitPrice: dec("100")}},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Cancelling an invoice with money on it is a conflict.
	cancelled := domain.InvoiceCancelled
	_, _, err = f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{Status: &cancelled})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateInvoice_ManualStatusRefusedOncePaid(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "100", date(2024, 4, 1))
	_, err := f.pay("PAY-001", cust.ContactID, "100", target(inv.InvoiceID, "100"))
	require.NoError(t, err)

	for _, status := range []domain.InvoiceStatus{domain.InvoiceDraft, domain.InvoiceSent, domain.InvoiceCancelled} {
		t.Run(string(status), func(t *testing.T) {
			_, _, err := f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{Status: &status})
			assert.ErrorIs(t, err, apperrors.ErrConflict)
		})
	}

	view, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, view.Invoice.Status)

	// Other fields can still be edited and the derived status survives.
	notes := "thanks"
	updated, _, err := f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, domain.InvoicePaid, updated.Status)
}

func TestUpdateInvoice_ReplacesLineItems(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "100", date(2024, 4, 1))

	notes := "revised"
	updated, items, err := f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{
		Notes: &notes,
		LineItems: []dto.LineItemRequest{
			{ItemName: "A", Quantity: dec("3"), UnitPrice: dec("0.335")},
			{ItemName: "B", Quantity: dec("7"), UnitPrice: dec("1.005")},
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, updated.Subtotal.Equal(dec("8.04")))
	assert.Equal(t, "revised", updated.Notes)

	view, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Len(t, view.LineItems, 2)
}

func TestUpdateInvoice_Errors(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "100", date(2024, 4, 1))

	_, _, err := f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	paid := domain.InvoicePaid
	_, _, err = f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{Status: &paid})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	early := dto.NewDate(date(2023, 12, 1))
	_, _, err = f.svc.Invoice.UpdateInvoice(f.ctx, inv.InvoiceID, dto.UpdateInvoiceRequest{DueDate: &early})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	notes := "x"
	_, _, err = f.svc.Invoice.UpdateInvoice(f.ctx, "missing", dto.UpdateInvoiceRequest{Notes: &notes})
	assert.ErrorIs(t, err, apperrors.ErrInvoiceNotFound)
}

func TestListInvoices_PagesNewestFirst(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	var numbers []string
	for i := range 5 {
		inv, _, err := f.svc.Invoice.CreateInvoice(f.ctx, dto.CreateInvoiceRequest{
			InvoiceNumber: "INV-" + string(rune('1'+i)),
			CustomerID:    cust.ContactID,
			InvoiceDate:   dto.NewDate(date(2024, 1, 1+i)),
			LineItems:     []dto.LineItemRequest{{ItemName: "x", Quantity: dec("1"), UnitPrice: dec("10")}},
		})
		require.NoError(t, err)
		numbers = append([]string{inv.InvoiceNumber}, numbers...)
	}

	var seen []string
	token := ""
	for page := 0; page < 5; page++ {
		invoices, next, err := f.svc.Invoice.ListInvoices(f.ctx, dto.ListInvoicesParams{Limit: 2, NextToken: token})
		require.NoError(t, err)
		for _, inv := range invoices {
			seen = append(seen, inv.InvoiceNumber)
			assert.Equal(t, "globex", inv.CustomerName)
		}
		if next == nil {
			break
		}
		token = *next
	}
	assert.Equal(t, numbers, seen)

	_, _, err := f.svc.Invoice.ListInvoices(f.ctx, dto.ListInvoicesParams{Limit: 2, NextToken: "%%%"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetInvoiceView_AssemblesEverything(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	quoteID := "quote-1"
	f.store.SaveQuote(domain.Quote{QuoteID: quoteID, QuoteNumber: "Q-1", CustomerID: cust.ContactID, QuoteDate: date(2023, 12, 20)})

	inv, _, err := f.svc.Invoice.CreateInvoice(f.ctx, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		CustomerID:    cust.ContactID,
		QuoteID:       &quoteID,
		InvoiceDate:   dto.NewDate(date(2024, 1, 1)),
		DueDate:       dto.NewDate(date(2024, 2, 14)),
		LineItems:     []dto.LineItemRequest{{ItemName: "Build", Quantity: dec("1"), UnitPrice: dec("300")}},
	})
	require.NoError(t, err)
	other := f.invoice(cust.ContactID, "INV-002", "1000", date(2024, 4, 1))

	// One payment split across both invoices, another overpaying this one.
	_, err = f.pay("PAY-001", cust.ContactID, "700", target(inv.InvoiceID, "100"), target(other.InvoiceID, "600"))
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	_, err = f.pay("PAY-002", cust.ContactID, "250", target(inv.InvoiceID, "250"))
	require.NoError(t, err)

	view, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)

	require.NotNil(t, view.Customer)
	assert.Equal(t, "globex", view.Customer.Name)
	require.NotNil(t, view.Quote)
	assert.Equal(t, "Q-1", view.Quote.QuoteNumber)
	assert.Len(t, view.LineItems, 1)

	require.Len(t, view.Payments, 2)
	assert.Equal(t, "PAY-002", view.Payments[0].PaymentNumber)
	assert.True(t, view.Payments[0].AllocatedAmount.Equal(dec("200")))
	assert.Equal(t, "PAY-001", view.Payments[1].PaymentNumber)
	assert.True(t, view.Payments[1].AllocatedAmount.Equal(dec("100")))
	assert.True(t, view.Payments[1].Amount.Equal(dec("700")))
	require.Len(t, view.Payments[1].AccountSplits, 1)
	assert.Equal(t, "Operating Bank", view.Payments[1].AccountSplits[0].AccountName)

	// Only this invoice's allocations count, not the 600 applied to INV-002.
	assert.Equal(t, 2, view.PaymentSummary.TotalPayments)
	assert.True(t, view.PaymentSummary.TotalAllocated.Equal(dec("300")))
	assert.True(t, view.PaymentSummary.RemainingBalance.IsZero())

	require.Len(t, view.Credits, 1)
	assert.True(t, view.Credits[0].Amount.Equal(dec("50")))
	assert.Equal(t, "PAY-002", view.Credits[0].PaymentNumber)

	// Paid in full, so nothing is overdue even though the due date has passed.
	assert.Equal(t, 30, view.Aging.DaysPastDue)
	assert.False(t, view.Aging.IsOverdue)
}

func TestGetInvoiceView_CreditsMatchWholeInvoiceNumber(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	short := f.invoice(cust.ContactID, "INV-1", "100", date(2024, 4, 1))
	long := f.invoice(cust.ContactID, "INV-10", "100", date(2024, 4, 1))
	_, err := f.pay("PAY-001", cust.ContactID, "130", target(long.InvoiceID, "130"))
	require.NoError(t, err)

	view, err := f.svc.Invoice.GetInvoiceView(f.ctx, short.InvoiceID)
	require.NoError(t, err)
	assert.Empty(t, view.Credits)

	view, err = f.svc.Invoice.GetInvoiceView(f.ctx, long.InvoiceID)
	require.NoError(t, err)
	require.Len(t, view.Credits, 1)
	assert.True(t, view.Credits[0].Amount.Equal(dec("30")))
}

func TestGetInvoiceView_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "300", date(2024, 2, 1))
	_, err := f.pay("PAY-001", cust.ContactID, "120", target(inv.InvoiceID, "120"))
	require.NoError(t, err)

	first, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)
	second, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.True(t, first.Aging.IsOverdue)
	assert.Equal(t, domain.Bucket31To60, first.Aging.Bucket)
	assert.Equal(t, 43, first.Aging.DaysPastDue)
}

func TestGetInvoiceView_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Invoice.GetInvoiceView(f.ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrInvoiceNotFound)
}

// danglingStore hides every contact and quote, as if the rows were removed after the
// invoice was written.
type danglingStore struct {
	*memory.Store
}

type hiddenContacts struct {
	portsrepo.ContactRepositoryFacade
}

func (hiddenContacts) FindContactByID(_ context.Context, contactID string) (*domain.Contact, error) {
	return nil, fmt.Errorf("%s: %w", contactID, apperrors.ErrContactNotFound)
}

type hiddenQuotes struct{}

func (hiddenQuotes) FindQuoteByID(_ context.Context, quoteID string) (*domain.Quote, error) {
	return nil, fmt.Errorf("quote %s: %w", quoteID, apperrors.ErrNotFound)
}

func (s danglingStore) Contacts() portsrepo.ContactRepositoryFacade {
	return hiddenContacts{s.Store.Contacts()}
}

func (s danglingStore) Quotes() portsrepo.QuoteReader { return hiddenQuotes{} }

func TestGetInvoiceView_MissingCustomerAndQuoteLeaveBlocksEmpty(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	quoteID := "quote-1"
	f.store.SaveQuote(domain.Quote{QuoteID: quoteID, QuoteNumber: "Q-1", CustomerID: cust.ContactID, QuoteDate: date(2023, 12, 20)})
	inv, _, err := f.svc.Invoice.CreateInvoice(f.ctx, dto.CreateInvoiceRequest{
		InvoiceNumber: "INV-001",
		CustomerID:    cust.ContactID,
		QuoteID:       &quoteID,
		InvoiceDate:   dto.NewDate(date(2024, 1, 1)),
		LineItems:     []dto.LineItemRequest{{ItemName: "Build", Quantity: dec("1"), UnitPrice: dec("300")}},
	})
	require.NoError(t, err)
	_, err = f.pay("PAY-001", cust.ContactID, "400", target(inv.InvoiceID, "400"))
	require.NoError(t, err)

	svc := services.NewInvoiceService(danglingStore{f.store}, services.WithClock(f.clock))
	view, err := svc.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)

	assert.Nil(t, view.Customer)
	assert.Nil(t, view.Quote)
	assert.Equal(t, "INV-001", view.Invoice.InvoiceNumber)
	assert.Len(t, view.Payments, 1)
	// Credits are still found through the invoice's customer id.
	require.Len(t, view.Credits, 1)
	assert.True(t, view.Credits[0].Amount.Equal(dec("100")))

	res := dto.ToInvoiceViewResponse(view)
	assert.Nil(t, res.Customer)
}
