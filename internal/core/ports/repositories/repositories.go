package repositories

// Repositories gives access to every repository facade. Outside a unit of work the
// facades read and write directly; inside one they share the unit's transaction.
type Repositories interface {
	Accounts() AccountRepositoryFacade
	Ledger() LedgerRepositoryFacade
	Contacts() ContactRepositoryFacade
	Quotes() QuoteReader
	Invoices() InvoiceRepositoryFacade
	Payments() PaymentRepositoryFacade
	Credits() CreditRepositoryFacade
	Reporting() ReportingRepository
}

// Store is a storage backend: its repositories plus the ability to run atomic units.
type Store interface {
	Repositories
	TransactionManager
}
