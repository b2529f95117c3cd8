package services

import (
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/platform/clock"
	"github.com/SscSPs/books_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, store portsrepo.Store) *portssvc.ServiceContainer {
	return newServiceContainer(cfg, store, clock.System{})
}

// NewServiceContainerWithClock is NewServiceContainer with every service reading time from c.
func NewServiceContainerWithClock(cfg *config.Config, store portsrepo.Store, c clock.Clock) *portssvc.ServiceContainer {
	return newServiceContainer(cfg, store, c)
}

func newServiceContainer(cfg *config.Config, store portsrepo.Store, c clock.Clock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	withClock := WithClock(c)

	// Ledger and credits first: accounts and payments write through them inside their own units.
	ledger := NewLedgerService(store, withClock)
	credits := NewCreditService(store, withClock)

	container.Ledger = ledger
	container.Credit = credits
	container.Account = NewAccountService(store, ledger, withClock)
	container.Contact = NewContactService(store.Contacts(), withClock)
	container.Invoice = NewInvoiceService(store, withClock)
	container.Payment = NewPaymentService(store, ledger, credits,
		WithUnappliedFundsAccount(cfg.UnappliedFundsAccountID),
		WithOverpaymentPolicy(domain.OverpaymentPolicy(cfg.OverpaymentPolicy)),
		WithPaymentClock(c),
	)
	container.Reporting = NewReportingService(store.Reporting(), withClock)

	return container
}
