package repositories

import (
	"context"
)

// UnitOfWork is a group of reads and writes that must succeed or fail together.
// The Repositories it receives are bound to the enclosing transaction.
type UnitOfWork func(ctx context.Context, repos Repositories) error

// TransactionManager runs units of work atomically.
type TransactionManager interface {
	// Atomic runs work in a single transaction. Any error returned by work rolls back
	// everything it wrote and is returned unchanged.
	Atomic(ctx context.Context, work UnitOfWork) error
}
