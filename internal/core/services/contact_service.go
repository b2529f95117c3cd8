package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/google/uuid"
)

type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a service for customers and vendors.
func NewContactService(repo portsrepo.ContactRepositoryFacade, options ...ServiceOption) portssvc.ContactSvcFacade {
	return &contactService{
		BaseService: newBaseService(options),
		contactRepo: repo,
	}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func requireContactType(contactType domain.ContactType) error {
	if !contactType.IsValid() {
		return fmt.Errorf("%w: contact type must be customer or vendor, got %q", apperrors.ErrValidation, contactType)
	}
	return nil
}

func (s *contactService) CreateContact(ctx context.Context, contactType domain.ContactType, req dto.CreateContactRequest) (*domain.Contact, error) {
	if err := requireContactType(contactType); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}

	now := s.Now()
	contact := domain.Contact{
		ContactID:   uuid.NewString(),
		Name:        name,
		ContactType: contactType,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact", slog.String("contact_type", string(contactType)))
		return nil, fmt.Errorf("failed to save %s: %w", contactType, err)
	}

	s.LogInfo(ctx, "Contact created successfully",
		slog.String("contact_id", contact.ContactID),
		slog.String("contact_type", string(contactType)))
	return &contact, nil
}

func (s *contactService) GetContact(ctx context.Context, contactType domain.ContactType, contactID string) (*domain.Contact, error) {
	if err := requireContactType(contactType); err != nil {
		return nil, err
	}
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to find contact", slog.String("contact_id", contactID))
		}
		return nil, err
	}
	// A vendor looked up as a customer (or the reverse) does not exist from the caller's view.
	if contact.ContactType != contactType {
		return nil, fmt.Errorf("%s %s: %w", contactType, contactID, apperrors.ErrContactNotFound)
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, contactType domain.ContactType, params dto.ListContactsParams) ([]domain.Contact, int, error) {
	if err := requireContactType(contactType); err != nil {
		return nil, 0, err
	}
	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	contacts, total, err := s.contactRepo.ListContacts(ctx, contactType, limit, (page-1)*limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contacts",
			slog.String("contact_type", string(contactType)),
			slog.Int("page", page),
			slog.Int("limit", limit))
		return nil, 0, fmt.Errorf("failed to list %s contacts: %w", contactType, err)
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	return contacts, total, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contactType domain.ContactType, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error) {
	update := req.ToContactUpdate()
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", apperrors.ErrValidation)
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, fmt.Errorf("%w: name must not be blank", apperrors.ErrValidation)
	}

	contact, err := s.GetContact(ctx, contactType, contactID)
	if err != nil {
		return nil, err
	}

	update.Apply(contact)
	contact.Touch(s.Now())
	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact", slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update %s %s: %w", contactType, contactID, err)
	}

	s.LogInfo(ctx, "Contact updated successfully", slog.String("contact_id", contactID))
	return contact, nil
}
