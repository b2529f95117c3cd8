package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
)

func (v *view) FindContactByID(_ context.Context, contactID string) (*domain.Contact, error) {
	var (
		c     domain.Contact
		found bool
	)
	v.read(func(st *state) { c, found = st.contacts[contactID] })
	if !found {
		return nil, fmt.Errorf("contact %s: %w", contactID, apperrors.ErrContactNotFound)
	}
	return &c, nil
}

func (v *view) ListContacts(_ context.Context, contactType domain.ContactType, limit, offset int) ([]domain.Contact, int, error) {
	all := make([]domain.Contact, 0)
	v.read(func(st *state) {
		for _, c := range st.contacts {
			if c.ContactType == contactType {
				all = append(all, c)
			}
		}
	})
	slices.SortFunc(all, func(a, b domain.Contact) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ContactID, b.ContactID)
	})

	total := len(all)
	start := min(max(offset, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return all[start:end], total, nil
}

func (v *view) SaveContact(_ context.Context, contact domain.Contact) error {
	return v.write(func(st *state) error {
		if _, exists := st.contacts[contact.ContactID]; exists {
			return fmt.Errorf("contact %s: %w", contact.ContactID, apperrors.ErrDuplicate)
		}
		st.contacts[contact.ContactID] = contact
		return nil
	})
}

func (v *view) UpdateContact(_ context.Context, contact domain.Contact) error {
	return v.write(func(st *state) error {
		if _, exists := st.contacts[contact.ContactID]; !exists {
			return fmt.Errorf("contact %s: %w", contact.ContactID, apperrors.ErrContactNotFound)
		}
		st.contacts[contact.ContactID] = contact
		return nil
	})
}

func (v *view) FindQuoteByID(_ context.Context, quoteID string) (*domain.Quote, error) {
	var (
		q     domain.Quote
		found bool
	)
	v.read(func(st *state) { q, found = st.quotes[quoteID] })
	if !found {
		return nil, fmt.Errorf("quote %s: %w", quoteID, apperrors.ErrNotFound)
	}
	return &q, nil
}
