package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/core/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/platform/clock"
	"github.com/SscSPs/books_backend/internal/platform/config"
	"github.com/SscSPs/books_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const unappliedAccountID = "acc-unapplied"

var testNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture wires every service over one in-memory store with a fake clock.
type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memory.Store
	clock *clock.Fake
	svc   *portssvc.ServiceContainer
	bank  *domain.Account
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Accounts().SaveAccount(ctx, domain.Account{
		AccountID:   unappliedAccountID,
		Name:        "Unapplied Funds",
		AccountType: domain.Liability,
		IsActive:    true,
	}))

	fake := clock.NewFake(testNow)
	cfg := &config.Config{
		UnappliedFundsAccountID: unappliedAccountID,
		OverpaymentPolicy:       string(domain.OverpaymentCredit),
	}
	f := &fixture{
		t:     t,
		ctx:   ctx,
		store: store,
		clock: fake,
		svc:   services.NewServiceContainerWithClock(cfg, store, fake),
	}
	f.bank = f.account("Operating Bank", domain.Asset)
	return f
}

func (f *fixture) account(name string, accountType domain.AccountType) *domain.Account {
	f.t.Helper()
	acc, err := f.svc.Account.CreateAccount(f.ctx, dto.CreateAccountRequest{Name: name, AccountType: accountType})
	require.NoError(f.t, err)
	return acc
}

func (f *fixture) customer(name string) *domain.Contact {
	f.t.Helper()
	c, err := f.svc.Contact.CreateContact(f.ctx, domain.Customer, dto.CreateContactRequest{
		Name:  name,
		Email: "billing@" + name + ".test",
	})
	require.NoError(f.t, err)
	return c
}

// invoice creates a sent invoice with one line item priced at amount, due on dueDate.
func (f *fixture) invoice(customerID, number, amount string, dueDate time.Time) *domain.Invoice {
	f.t.Helper()
	inv, _, err := f.svc.Invoice.CreateInvoice(f.ctx, dto.CreateInvoiceRequest{
		InvoiceNumber: number,
		CustomerID:    customerID,
		InvoiceDate:   dto.NewDate(date(2024, 1, 1)),
		DueDate:       dto.NewDate(dueDate),
		Status:        domain.InvoiceSent,
		LineItems: []dto.LineItemRequest{
			{ItemName: "Consulting", Quantity: dec("1"), UnitPrice: dec(amount)},
		},
	})
	require.NoError(f.t, err)
	return inv
}

func (f *fixture) pay(number, contactID, amount string, targets ...dto.AllocationTargetRequest) (*domain.PaymentAllocationResult, error) {
	return f.svc.Payment.AllocatePayment(f.ctx, dto.CreatePaymentRequest{
		PaymentNumber:    number,
		PaymentDate:      dto.NewDate(date(2024, 3, 10)),
		PaymentMethod:    "bank_transfer",
		ContactID:        contactID,
		Amount:           dec(amount),
		DepositAccountID: f.bank.AccountID,
		Allocations:      targets,
	})
}

func target(invoiceID, amount string) dto.AllocationTargetRequest {
	return dto.AllocationTargetRequest{InvoiceID: invoiceID, Amount: dec(amount)}
}
