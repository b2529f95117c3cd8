package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type ledgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerRepositoryFacade = (*ledgerRepository)(nil)

func (r *ledgerRepository) SaveTransaction(ctx context.Context, txn domain.AccountTransaction) error {
	query := `
		INSERT INTO account_transactions
			(transaction_id, account_id, transaction_type, amount, description, reference_number, transaction_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		txn.TransactionID,
		txn.AccountID,
		txn.TransactionType,
		txn.Amount,
		txn.Description,
		txn.ReferenceNumber,
		txn.TransactionDate,
		txn.CreatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return fmt.Errorf("account %s: %w", txn.AccountID, apperrors.ErrAccountNotFound)
		}
		return dbError(fmt.Sprintf("failed to save transaction for account %s", txn.AccountID), err)
	}
	return nil
}

func (r *ledgerRepository) ListTransactionsByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.AccountTransaction, error) {
	query := `
		SELECT transaction_id, account_id, transaction_type, amount, description, reference_number, transaction_date, created_at
		FROM account_transactions
		WHERE account_id = $1
		  AND ($2::date IS NULL OR transaction_date >= $2::date)
		  AND ($3::date IS NULL OR transaction_date <= $3::date)
		ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC;
	`
	rows, err := r.db.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to list transactions for account %s", accountID), err)
	}
	defer rows.Close()

	txns := make([]domain.AccountTransaction, 0)
	for rows.Next() {
		var t domain.AccountTransaction
		if err := rows.Scan(
			&t.TransactionID,
			&t.AccountID,
			&t.TransactionType,
			&t.Amount,
			&t.Description,
			&t.ReferenceNumber,
			&t.TransactionDate,
			&t.CreatedAt,
		); err != nil {
			return nil, dbError("failed to scan transaction row", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating transaction rows", err)
	}
	return txns, nil
}

func (r *ledgerRepository) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN transaction_type = 'deposit' THEN amount ELSE -amount END), 0)
		FROM account_transactions
		WHERE account_id = $1;
	`
	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, dbError(fmt.Sprintf("failed to compute balance for account %s", accountID), err)
	}
	return balance, nil
}
