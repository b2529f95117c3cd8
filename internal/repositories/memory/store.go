package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
)

// state is everything the store holds. Units of work operate on a clone of it.
type state struct {
	accounts       map[string]domain.Account
	transactions   []domain.AccountTransaction
	contacts       map[string]domain.Contact
	quotes         map[string]domain.Quote
	invoices       map[string]domain.Invoice
	invoiceNumbers map[string]string
	lineItems      map[string][]domain.InvoiceLineItem
	payments       map[string]domain.Payment
	paymentNumbers map[string]string
	allocations    []domain.PaymentAllocation
	splits         []domain.PaymentAccountSplit
	credits        []domain.Credit
}

func newState() *state {
	return &state{
		accounts:       make(map[string]domain.Account),
		contacts:       make(map[string]domain.Contact),
		quotes:         make(map[string]domain.Quote),
		invoices:       make(map[string]domain.Invoice),
		invoiceNumbers: make(map[string]string),
		lineItems:      make(map[string][]domain.InvoiceLineItem),
		payments:       make(map[string]domain.Payment),
		paymentNumbers: make(map[string]string),
	}
}

func (st *state) clone() *state {
	lineItems := make(map[string][]domain.InvoiceLineItem, len(st.lineItems))
	for k, v := range st.lineItems {
		lineItems[k] = slices.Clone(v)
	}
	return &state{
		accounts:       maps.Clone(st.accounts),
		transactions:   slices.Clone(st.transactions),
		contacts:       maps.Clone(st.contacts),
		quotes:         maps.Clone(st.quotes),
		invoices:       maps.Clone(st.invoices),
		invoiceNumbers: maps.Clone(st.invoiceNumbers),
		lineItems:      lineItems,
		payments:       maps.Clone(st.payments),
		paymentNumbers: maps.Clone(st.paymentNumbers),
		allocations:    slices.Clone(st.allocations),
		splits:         slices.Clone(st.splits),
		credits:        slices.Clone(st.credits),
	}
}

// Store is an in-memory implementation of portsrepo.Store.
//
// Units of work are serialized and run against a private copy of the data that replaces the
// live copy only when the unit succeeds, so a failed unit leaves no trace. Writes made outside
// a unit are serialized with units.
type Store struct {
	txMu sync.Mutex   // serializes units and writes made outside units
	mu   sync.RWMutex // guards data
	data *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState()}
}

var _ portsrepo.Store = (*Store)(nil)

// Atomic runs work against a snapshot and commits it only if work returns nil.
// work must not call Atomic on the same store.
func (s *Store) Atomic(ctx context.Context, work portsrepo.UnitOfWork) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	working := s.data.clone()
	s.mu.RUnlock()

	if err := work(ctx, &view{st: working, unit: true}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = working
	s.mu.Unlock()
	return nil
}

func (s *Store) root() *view { return &view{s: s} }

func (s *Store) Accounts() portsrepo.AccountRepositoryFacade { return s.root() }
func (s *Store) Ledger() portsrepo.LedgerRepositoryFacade    { return s.root() }
func (s *Store) Contacts() portsrepo.ContactRepositoryFacade { return s.root() }
func (s *Store) Quotes() portsrepo.QuoteReader               { return s.root() }
func (s *Store) Invoices() portsrepo.InvoiceRepositoryFacade { return s.root() }
func (s *Store) Payments() portsrepo.PaymentRepositoryFacade { return s.root() }
func (s *Store) Credits() portsrepo.CreditRepositoryFacade   { return s.root() }
func (s *Store) Reporting() portsrepo.ReportingRepository    { return s.root() }

// SaveQuote stores a quote. Quotes are created outside this service, so this exists for seeding.
func (s *Store) SaveQuote(q domain.Quote) {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.quotes[q.QuoteID] = q
}

// view implements every repository interface over either the live data (root view)
// or a unit's working copy.
type view struct {
	s    *Store
	st   *state
	unit bool
}

func (v *view) Accounts() portsrepo.AccountRepositoryFacade { return v }
func (v *view) Ledger() portsrepo.LedgerRepositoryFacade    { return v }
func (v *view) Contacts() portsrepo.ContactRepositoryFacade { return v }
func (v *view) Quotes() portsrepo.QuoteReader               { return v }
func (v *view) Invoices() portsrepo.InvoiceRepositoryFacade { return v }
func (v *view) Payments() portsrepo.PaymentRepositoryFacade { return v }
func (v *view) Credits() portsrepo.CreditRepositoryFacade   { return v }
func (v *view) Reporting() portsrepo.ReportingRepository    { return v }

var _ portsrepo.Repositories = (*view)(nil)

func (v *view) read(fn func(st *state)) {
	if v.unit {
		fn(v.st)
		return
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	fn(v.s.data)
}

// write must validate before mutating: outside a unit there is nothing to roll back to.
func (v *view) write(fn func(st *state) error) error {
	if v.unit {
		return fn(v.st)
	}
	v.s.txMu.Lock()
	defer v.s.txMu.Unlock()
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	return fn(v.s.data)
}
