package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type contactRepository struct {
	BaseRepository
}

var _ portsrepo.ContactRepositoryFacade = (*contactRepository)(nil)

const contactColumns = `contact_id, name, contact_type, email, phone, address, created_at, updated_at`

func scanContact(row pgx.Row) (domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ContactID, &c.Name, &c.ContactType, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *contactRepository) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE contact_id = $1;`

	c, err := scanContact(r.db.QueryRow(ctx, query, contactID))
	if err != nil {
		return nil, notFound(err, apperrors.ErrContactNotFound, "contact %s", contactID)
	}
	return &c, nil
}

func (r *contactRepository) ListContacts(ctx context.Context, contactType domain.ContactType, limit, offset int) ([]domain.Contact, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE contact_type = $1;`, contactType).Scan(&total); err != nil {
		return nil, 0, dbError("failed to count contacts", err)
	}

	query := `
		SELECT ` + contactColumns + `
		FROM contacts
		WHERE contact_type = $1
		ORDER BY name ASC, contact_id ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.db.Query(ctx, query, contactType, limit, offset)
	if err != nil {
		return nil, 0, dbError("failed to list contacts", err)
	}
	defer rows.Close()

	contacts := make([]domain.Contact, 0, limit)
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, dbError("failed to scan contact row", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dbError("failed iterating contact rows", err)
	}
	return contacts, total, nil
}

func (r *contactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	query := `
		INSERT INTO contacts (contact_id, name, contact_type, email, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.ContactType,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("contact %s: %w", contact.ContactID, apperrors.ErrDuplicate)
		}
		return dbError(fmt.Sprintf("failed to save contact %s", contact.ContactID), err)
	}
	return nil
}

func (r *contactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, email = $3, phone = $4, address = $5, updated_at = $6
		WHERE contact_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		contact.ContactID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Address,
		contact.UpdatedAt,
	)
	if err != nil {
		return dbError(fmt.Sprintf("failed to update contact %s", contact.ContactID), err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("contact %s: %w", contact.ContactID, apperrors.ErrContactNotFound)
	}
	return nil
}

type quoteRepository struct {
	BaseRepository
}

var _ portsrepo.QuoteReader = (*quoteRepository)(nil)

func (r *quoteRepository) FindQuoteByID(ctx context.Context, quoteID string) (*domain.Quote, error) {
	query := `SELECT quote_id, quote_number, customer_id, quote_date FROM quotes WHERE quote_id = $1;`

	var q domain.Quote
	err := r.db.QueryRow(ctx, query, quoteID).Scan(&q.QuoteID, &q.QuoteNumber, &q.CustomerID, &q.QuoteDate)
	if err != nil {
		return nil, notFound(err, apperrors.ErrNotFound, "quote %s", quoteID)
	}
	return &q, nil
}
