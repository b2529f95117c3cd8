package repositories

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// ContactReader defines read operations for contacts.
type ContactReader interface {
	// FindContactByID returns apperrors.ErrContactNotFound when the contact does not exist.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// ListContacts returns a page of contacts of one type ordered by name, plus the total count of that type.
	ListContacts(ctx context.Context, contactType domain.ContactType, limit, offset int) ([]domain.Contact, int, error)
}

// ContactWriter defines write operations for contacts.
type ContactWriter interface {
	SaveContact(ctx context.Context, contact domain.Contact) error
	UpdateContact(ctx context.Context, contact domain.Contact) error
}

// ContactRepositoryFacade combines all contact repository interfaces
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
