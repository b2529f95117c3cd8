package services_test

import (
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueCredit_EmbedsInvoiceNumber(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-042", "100", date(2024, 4, 1))

	credit, err := f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{
		ContactID:     cust.ContactID,
		Amount:        dec("15.005"),
		Description:   "Goodwill for late delivery",
		InvoiceNumber: "INV-042",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CreditFromAdjustment, credit.Source)
	assert.Equal(t, domain.Customer, credit.ContactType)
	assert.Equal(t, "Goodwill for late delivery (invoice INV-042)", credit.Description)
	assert.True(t, credit.Amount.Equal(dec("15.01")))

	// A longer number that merely starts with this one does not count as a mention.
	other, err := f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{
		ContactID:     cust.ContactID,
		Amount:        dec("1"),
		Description:   "Carried from INV-0420",
		InvoiceNumber: "INV-042",
	})
	require.NoError(t, err)
	assert.Equal(t, "Carried from INV-0420 (invoice INV-042)", other.Description)

	view, err := f.svc.Invoice.GetInvoiceView(f.ctx, inv.InvoiceID)
	require.NoError(t, err)
	require.Len(t, view.Credits, 2)
	assert.ElementsMatch(t, []string{credit.CreditID, other.CreditID},
		[]string{view.Credits[0].CreditID, view.Credits[1].CreditID})
}

func TestIssueCredit_Errors(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	missing := "missing"

	_, err := f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{ContactID: cust.ContactID, Amount: dec("0")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{ContactID: cust.ContactID, Amount: dec("0.004")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{ContactID: "missing", Amount: dec("5")})
	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)

	_, err = f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{ContactID: cust.ContactID, Amount: dec("5"), PaymentID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)

	credits, err := f.svc.Credit.ListCredits(f.ctx, domain.Customer, cust.ContactID)
	require.NoError(t, err)
	assert.Empty(t, credits.Credits)
}

func TestListCredits_NewestFirstWithTotal(t *testing.T) {
	f := newFixture(t)
	cust := f.customer("globex")
	inv := f.invoice(cust.ContactID, "INV-001", "100", date(2024, 4, 1))

	_, err := f.pay("PAY-001", cust.ContactID, "130", target(inv.InvoiceID, "130"))
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	manual, err := f.svc.Credit.IssueCredit(f.ctx, dto.IssueCreditRequest{ContactID: cust.ContactID, Amount: dec("12.50")})
	require.NoError(t, err)

	credits, err := f.svc.Credit.ListCredits(f.ctx, domain.Customer, cust.ContactID)
	require.NoError(t, err)
	require.Len(t, credits.Credits, 2)
	assert.Equal(t, manual.CreditID, credits.Credits[0].CreditID)
	assert.Equal(t, domain.CreditFromOverpayment, credits.Credits[1].Source)
	assert.Equal(t, "PAY-001", credits.Credits[1].PaymentNumber)
	assert.True(t, credits.Total.Equal(dec("42.50")))

	_, err = f.svc.Credit.ListCredits(f.ctx, domain.Vendor, cust.ContactID)
	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
}
