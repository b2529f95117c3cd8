package services

// ServiceContainer holds instances of all the application services.
// It is the main entry point for handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Ledger    LedgerSvcFacade
	Contact   ContactSvcFacade
	Invoice   InvoiceSvcFacade
	Payment   PaymentSvcFacade
	Credit    CreditSvcFacade
	Reporting ReportingService
}
