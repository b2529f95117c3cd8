package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type accountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

// accountColumns selects an account with its balance derived from the ledger.
const accountColumns = `
	a.account_id, a.name, a.account_type, a.subtype, a.is_active, a.created_at, a.updated_at,
	COALESCE((
		SELECT SUM(CASE WHEN t.transaction_type = 'deposit' THEN t.amount ELSE -t.amount END)
		FROM account_transactions t
		WHERE t.account_id = a.account_id
	), 0) AS balance`

func scanAccount(row pgx.Row) (domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.Name,
		&acc.AccountType,
		&acc.Subtype,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.UpdatedAt,
		&acc.Balance,
	)
	return acc, err
}

// SaveAccount inserts a new account.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (account_id, name, account_type, subtype, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.Subtype,
		account.IsActive,
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", account.AccountID, apperrors.ErrDuplicate)
		}
		return dbError(fmt.Sprintf("failed to save account %s", account.AccountID), err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_id = $1;`

	acc, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		return nil, notFound(err, apperrors.ErrAccountNotFound, "account %s", accountID)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *accountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	res := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return res, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, dbError("failed to query accounts by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, dbError("failed to scan account row", err)
		}
		res[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating account rows", err)
	}
	return res, nil
}

// ListAccounts retrieves accounts ordered by name.
func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts a
		WHERE ($1::text IS NULL OR a.account_type = $1)
		  AND ($2 OR a.is_active)
		ORDER BY a.name ASC, a.account_id ASC;
	`
	var accountType *string
	if filter.AccountType != nil {
		t := string(*filter.AccountType)
		accountType = &t
	}

	rows, err := r.db.Query(ctx, query, accountType, filter.IncludeInactive)
	if err != nil {
		return nil, dbError("failed to list accounts", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, dbError("failed to scan account row", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating account rows", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive. Its transactions stay.
func (r *accountRepository) DeactivateAccount(ctx context.Context, accountID string, now time.Time) error {
	query := `UPDATE accounts SET is_active = FALSE, updated_at = $2 WHERE account_id = $1;`

	tag, err := r.db.Exec(ctx, query, accountID, now)
	if err != nil {
		return dbError(fmt.Sprintf("failed to deactivate account %s", accountID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("account %s: %w", accountID, apperrors.ErrAccountNotFound)
	}
	return nil
}
