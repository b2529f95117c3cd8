package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/books_backend/internal/apperrors"
	"github.com/SscSPs/books_backend/internal/core/domain"
)

func (v *view) FindPaymentByID(_ context.Context, paymentID string) (*domain.Payment, error) {
	var (
		p     domain.Payment
		found bool
	)
	v.read(func(st *state) { p, found = st.payments[paymentID] })
	if !found {
		return nil, fmt.Errorf("payment %s: %w", paymentID, apperrors.ErrPaymentNotFound)
	}
	return &p, nil
}

func (v *view) FindPaymentsByIDs(_ context.Context, paymentIDs []string) (map[string]domain.Payment, error) {
	res := make(map[string]domain.Payment, len(paymentIDs))
	v.read(func(st *state) {
		for _, id := range paymentIDs {
			if p, ok := st.payments[id]; ok {
				res[id] = p
			}
		}
	})
	return res, nil
}

func (v *view) ListAllocationsByInvoice(_ context.Context, invoiceID string) ([]domain.PaymentAllocation, error) {
	res := make([]domain.PaymentAllocation, 0)
	v.read(func(st *state) {
		for _, a := range st.allocations {
			if a.ReferenceType == domain.AllocateToInvoice && a.ReferenceID == invoiceID {
				res = append(res, a)
			}
		}
	})
	return res, nil
}

func (v *view) ListAllocationsByPayment(_ context.Context, paymentID string) ([]domain.PaymentAllocation, error) {
	res := make([]domain.PaymentAllocation, 0)
	v.read(func(st *state) {
		for _, a := range st.allocations {
			if a.PaymentID == paymentID {
				res = append(res, a)
			}
		}
	})
	return res, nil
}

func (v *view) ListSplitsByPaymentIDs(_ context.Context, paymentIDs []string) ([]domain.PaymentAccountSplit, error) {
	wanted := make(map[string]struct{}, len(paymentIDs))
	for _, id := range paymentIDs {
		wanted[id] = struct{}{}
	}
	res := make([]domain.PaymentAccountSplit, 0)
	v.read(func(st *state) {
		for _, s := range st.splits {
			if _, ok := wanted[s.PaymentID]; !ok {
				continue
			}
			acc := st.accounts[s.AccountID]
			s.AccountName = acc.Name
			s.AccountType = acc.AccountType
			res = append(res, s)
		}
	})
	return res, nil
}

func (v *view) SavePayment(_ context.Context, payment domain.Payment) error {
	return v.write(func(st *state) error {
		if _, exists := st.payments[payment.PaymentID]; exists {
			return fmt.Errorf("payment %s: %w", payment.PaymentID, apperrors.ErrDuplicate)
		}
		if _, taken := st.paymentNumbers[payment.PaymentNumber]; taken {
			return fmt.Errorf("payment number %s: %w", payment.PaymentNumber, apperrors.ErrDuplicate)
		}
		st.payments[payment.PaymentID] = payment
		st.paymentNumbers[payment.PaymentNumber] = payment.PaymentID
		return nil
	})
}

func (v *view) SaveAllocation(_ context.Context, allocation domain.PaymentAllocation) error {
	return v.write(func(st *state) error {
		if _, ok := st.payments[allocation.PaymentID]; !ok {
			return fmt.Errorf("payment %s: %w", allocation.PaymentID, apperrors.ErrPaymentNotFound)
		}
		st.allocations = append(st.allocations, allocation)
		return nil
	})
}

func (v *view) SaveSplit(_ context.Context, split domain.PaymentAccountSplit) error {
	return v.write(func(st *state) error {
		if _, ok := st.payments[split.PaymentID]; !ok {
			return fmt.Errorf("payment %s: %w", split.PaymentID, apperrors.ErrPaymentNotFound)
		}
		if _, ok := st.accounts[split.AccountID]; !ok {
			return fmt.Errorf("account %s: %w", split.AccountID, apperrors.ErrAccountNotFound)
		}
		split.AccountName, split.AccountType = "", ""
		st.splits = append(st.splits, split)
		return nil
	})
}
