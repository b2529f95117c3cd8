package services

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/dto"
)

// ContactSvcFacade defines customer and vendor management.
// Every operation is scoped by contact type; a contact of the other type is reported as not found.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, contactType domain.ContactType, req dto.CreateContactRequest) (*domain.Contact, error)
	GetContact(ctx context.Context, contactType domain.ContactType, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, contactType domain.ContactType, params dto.ListContactsParams) ([]domain.Contact, int, error)
	// UpdateContact applies only the supplied fields. An empty update is a validation error.
	UpdateContact(ctx context.Context, contactType domain.ContactType, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error)
}
