package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
)

func (st *state) creditsWhere(keep func(domain.Credit) bool) []domain.Credit {
	res := make([]domain.Credit, 0)
	for _, c := range st.credits {
		if !keep(c) {
			continue
		}
		if c.PaymentID != nil {
			c.PaymentNumber = st.payments[*c.PaymentID].PaymentNumber
		}
		res = append(res, c)
	}
	slices.SortFunc(res, func(a, b domain.Credit) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.CreditID, a.CreditID)
	})
	return res
}

func (v *view) ListCreditsByContact(_ context.Context, contactID string) ([]domain.Credit, error) {
	var res []domain.Credit
	v.read(func(st *state) {
		res = st.creditsWhere(func(c domain.Credit) bool { return c.ContactID == contactID })
	})
	return res, nil
}

func (v *view) ListCreditsMentioning(_ context.Context, contactID string, contactType domain.ContactType, text string) ([]domain.Credit, error) {
	var res []domain.Credit
	v.read(func(st *state) {
		res = st.creditsWhere(func(c domain.Credit) bool {
			return c.ContactID == contactID && c.ContactType == contactType && c.MentionsInvoice(text)
		})
	})
	return res, nil
}

func (v *view) SaveCredit(_ context.Context, credit domain.Credit) error {
	return v.write(func(st *state) error {
		if _, ok := st.contacts[credit.ContactID]; !ok {
			return fmt.Errorf("contact %s: %w", credit.ContactID, apperrors.ErrContactNotFound)
		}
		credit.PaymentNumber = ""
		st.credits = append(st.credits, credit)
		return nil
	})
}
