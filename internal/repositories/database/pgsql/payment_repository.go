package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type paymentRepository struct {
	BaseRepository
}

var _ portsrepo.PaymentRepositoryFacade = (*paymentRepository)(nil)

const paymentColumns = `payment_id, payment_number, payment_date, payment_method, reference_number, notes, contact_id, amount, created_at`

func scanPayment(row pgx.Row) (domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.PaymentID,
		&p.PaymentNumber,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.ReferenceNumber,
		&p.Notes,
		&p.ContactID,
		&p.Amount,
		&p.CreatedAt,
	)
	return p, err
}

func (r *paymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1;`

	p, err := scanPayment(r.db.QueryRow(ctx, query, paymentID))
	if err != nil {
		return nil, notFound(err, apperrors.ErrPaymentNotFound, "payment %s", paymentID)
	}
	return &p, nil
}

func (r *paymentRepository) FindPaymentsByIDs(ctx context.Context, paymentIDs []string) (map[string]domain.Payment, error) {
	res := make(map[string]domain.Payment, len(paymentIDs))
	if len(paymentIDs) == 0 {
		return res, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE payment_id = ANY($1);`, paymentIDs)
	if err != nil {
		return nil, dbError("failed to query payments by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, dbError("failed to scan payment row", err)
		}
		res[p.PaymentID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating payment rows", err)
	}
	return res, nil
}

func (r *paymentRepository) listAllocations(ctx context.Context, where string, arg any) ([]domain.PaymentAllocation, error) {
	query := `
		SELECT allocation_id, payment_id, reference_type, reference_id, allocated_amount, created_at
		FROM payment_allocations
		WHERE ` + where + `
		ORDER BY created_at ASC, allocation_id ASC;
	`
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, dbError("failed to list allocations", err)
	}
	defer rows.Close()

	allocations := make([]domain.PaymentAllocation, 0)
	for rows.Next() {
		var a domain.PaymentAllocation
		if err := rows.Scan(&a.AllocationID, &a.PaymentID, &a.ReferenceType, &a.ReferenceID, &a.AllocatedAmount, &a.CreatedAt); err != nil {
			return nil, dbError("failed to scan allocation row", err)
		}
		allocations = append(allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating allocation rows", err)
	}
	return allocations, nil
}

func (r *paymentRepository) ListAllocationsByInvoice(ctx context.Context, invoiceID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, "reference_type = 'invoice' AND reference_id = $1", invoiceID)
}

func (r *paymentRepository) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	return r.listAllocations(ctx, "payment_id = $1", paymentID)
}

func (r *paymentRepository) ListSplitsByPaymentIDs(ctx context.Context, paymentIDs []string) ([]domain.PaymentAccountSplit, error) {
	splits := make([]domain.PaymentAccountSplit, 0)
	if len(paymentIDs) == 0 {
		return splits, nil
	}

	query := `
		SELECT s.split_id, s.payment_id, s.account_id, s.amount, s.created_at, a.name, a.account_type
		FROM payment_account_splits s
		JOIN accounts a ON a.account_id = s.account_id
		WHERE s.payment_id = ANY($1)
		ORDER BY s.payment_id, s.created_at ASC, s.split_id ASC;
	`
	rows, err := r.db.Query(ctx, query, paymentIDs)
	if err != nil {
		return nil, dbError("failed to list payment splits", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s domain.PaymentAccountSplit
		if err := rows.Scan(&s.SplitID, &s.PaymentID, &s.AccountID, &s.Amount, &s.CreatedAt, &s.AccountName, &s.AccountType); err != nil {
			return nil, dbError("failed to scan split row", err)
		}
		splits = append(splits, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating split rows", err)
	}
	return splits, nil
}

func (r *paymentRepository) SavePayment(ctx context.Context, p domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		p.PaymentID,
		p.PaymentNumber,
		p.PaymentDate,
		p.PaymentMethod,
		p.ReferenceNumber,
		p.Notes,
		p.ContactID,
		p.Amount,
		p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("payment number %s: %w", p.PaymentNumber, apperrors.ErrDuplicate)
		}
		if pgErrorCode(err) == foreignKeyViolation {
			return fmt.Errorf("contact %s: %w", p.ContactID, apperrors.ErrContactNotFound)
		}
		return dbError(fmt.Sprintf("failed to save payment %s", p.PaymentNumber), err)
	}
	return nil
}

func (r *paymentRepository) SaveAllocation(ctx context.Context, a domain.PaymentAllocation) error {
	query := `
		INSERT INTO payment_allocations (allocation_id, payment_id, reference_type, reference_id, allocated_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db.Exec(ctx, query, a.AllocationID, a.PaymentID, a.ReferenceType, a.ReferenceID, a.AllocatedAmount, a.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return fmt.Errorf("payment %s: %w", a.PaymentID, apperrors.ErrPaymentNotFound)
		}
		return dbError(fmt.Sprintf("failed to save allocation for payment %s", a.PaymentID), err)
	}
	return nil
}

func (r *paymentRepository) SaveSplit(ctx context.Context, s domain.PaymentAccountSplit) error {
	query := `
		INSERT INTO payment_account_splits (split_id, payment_id, account_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err := r.db.Exec(ctx, query, s.SplitID, s.PaymentID, s.AccountID, s.Amount, s.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return fmt.Errorf("split of payment %s to account %s: %w", s.PaymentID, s.AccountID, apperrors.ErrNotFound)
		}
		return dbError(fmt.Sprintf("failed to save split for payment %s", s.PaymentID), err)
	}
	return nil
}
