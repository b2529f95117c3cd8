package services

import (
	"context"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerWriterSvc records ledger entries.
type LedgerWriterSvc interface {
	// RecordTransaction appends one deposit or withdrawal to an active account in its own unit.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.AccountTransaction, error)

	// RecordTransactionInUnit does the same using repos from an enclosing unit of work.
	RecordTransactionInUnit(ctx context.Context, repos portsrepo.Repositories, txn domain.AccountTransaction) (*domain.AccountTransaction, error)
}

// LedgerReaderSvc reads ledger entries and derived balances.
type LedgerReaderSvc interface {
	// GetStatement returns the account's entries within [from, to] with totals over that window only.
	GetStatement(ctx context.Context, accountID string, from, to *time.Time) (*domain.AccountStatement, error)

	// GetBalance returns the account's all-time balance.
	GetBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerSvcFacade combines all ledger service interfaces
type LedgerSvcFacade interface {
	LedgerWriterSvc
	LedgerReaderSvc
}
