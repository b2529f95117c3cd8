package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations for account transactions.
type LedgerReader interface {
	// ListTransactionsByAccount returns the account's entries with from <= transaction_date <= to,
	// ordered by transaction_date DESC, created_at DESC, id DESC. Nil bounds are open.
	ListTransactionsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.AccountTransaction, error)

	// GetAccountBalance returns deposits minus withdrawals over all of the account's entries.
	GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// LedgerWriter defines write operations for account transactions. Entries are append-only.
type LedgerWriter interface {
	SaveTransaction(ctx context.Context, txn domain.AccountTransaction) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
