package pgsql

import (
	"context"
	"fmt"
	"slices"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
)

type creditRepository struct {
	BaseRepository
}

var _ portsrepo.CreditRepositoryFacade = (*creditRepository)(nil)

func (r *creditRepository) listCredits(ctx context.Context, where string, args ...any) ([]domain.Credit, error) {
	query := `
		SELECT c.credit_id, c.contact_id, c.contact_type, c.amount, c.source, c.description,
		       c.payment_id, c.created_at, COALESCE(p.payment_number, '')
		FROM credits c
		LEFT JOIN payments p ON p.payment_id = c.payment_id
		WHERE ` + where + `
		ORDER BY c.created_at DESC, c.credit_id DESC;
	`
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dbError("failed to list credits", err)
	}
	defer rows.Close()

	credits := make([]domain.Credit, 0)
	for rows.Next() {
		var c domain.Credit
		if err := rows.Scan(
			&c.CreditID,
			&c.ContactID,
			&c.ContactType,
			&c.Amount,
			&c.Source,
			&c.Description,
			&c.PaymentID,
			&c.CreatedAt,
			&c.PaymentNumber,
		); err != nil {
			return nil, dbError("failed to scan credit row", err)
		}
		credits = append(credits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("failed iterating credit rows", err)
	}
	return credits, nil
}

func (r *creditRepository) ListCreditsByContact(ctx context.Context, contactID string) ([]domain.Credit, error) {
	return r.listCredits(ctx, "c.contact_id = $1", contactID)
}

// ListCreditsMentioning narrows with a plain substring match, so LIKE wildcards in text are not
// special, then keeps only whole-token matches.
func (r *creditRepository) ListCreditsMentioning(ctx context.Context, contactID string, contactType domain.ContactType, text string) ([]domain.Credit, error) {
	credits, err := r.listCredits(ctx, "c.contact_id = $1 AND c.contact_type = $2 AND strpos(c.description, $3) > 0",
		contactID, contactType, text)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(credits, func(c domain.Credit) bool { return !c.MentionsInvoice(text) }), nil
}

func (r *creditRepository) SaveCredit(ctx context.Context, c domain.Credit) error {
	query := `
		INSERT INTO credits (credit_id, contact_id, contact_type, amount, source, description, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query, c.CreditID, c.ContactID, c.ContactType, c.Amount, c.Source, c.Description, c.PaymentID, c.CreatedAt)
	if err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return fmt.Errorf("contact %s: %w", c.ContactID, apperrors.ErrContactNotFound)
		}
		return dbError(fmt.Sprintf("failed to save credit for contact %s", c.ContactID), err)
	}
	return nil
}
