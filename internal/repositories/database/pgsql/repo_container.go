package pgsql

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a PostgreSQL implementation of portsrepo.Store.
type Store struct {
	pool *pgxpool.Pool
	repositories
}

// NewStore builds a store over an open pool. Repositories obtained from the store itself
// run each statement on the pool; those handed to a unit of work share its transaction.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, repositories: repositories{base: BaseRepository{db: pool}}}
}

var _ portsrepo.Store = (*Store)(nil)

// Atomic runs work inside one READ COMMITTED transaction.
func (s *Store) Atomic(ctx context.Context, work portsrepo.UnitOfWork) error {
	tx, err := Begin(ctx, s.pool)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := Rollback(ctx, tx); rerr != nil {
			middleware.GetLoggerFromCtx(ctx).Error("Rollback failed", slog.String("error", rerr.Error()))
		}
	}()

	if err := work(ctx, repositories{base: BaseRepository{db: tx}}); err != nil {
		return err
	}
	return Commit(ctx, tx)
}

// repositories hands out the per-entity repositories over one querier.
type repositories struct {
	base BaseRepository
}

var _ portsrepo.Repositories = repositories{}

func (r repositories) Accounts() portsrepo.AccountRepositoryFacade {
	return &accountRepository{BaseRepository: r.base}
}

func (r repositories) Ledger() portsrepo.LedgerRepositoryFacade {
	return &ledgerRepository{BaseRepository: r.base}
}

func (r repositories) Contacts() portsrepo.ContactRepositoryFacade {
	return &contactRepository{BaseRepository: r.base}
}

func (r repositories) Quotes() portsrepo.QuoteReader {
	return &quoteRepository{BaseRepository: r.base}
}

func (r repositories) Invoices() portsrepo.InvoiceRepositoryFacade {
	return &invoiceRepository{BaseRepository: r.base}
}

func (r repositories) Payments() portsrepo.PaymentRepositoryFacade {
	return &paymentRepository{BaseRepository: r.base}
}

func (r repositories) Credits() portsrepo.CreditRepositoryFacade {
	return &creditRepository{BaseRepository: r.base}
}

func (r repositories) Reporting() portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: r.base}
}
