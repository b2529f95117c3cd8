package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

func (v *view) ListOpenInvoices(_ context.Context) ([]domain.InvoiceSummary, error) {
	res := make([]domain.InvoiceSummary, 0)
	v.read(func(st *state) {
		for _, inv := range st.invoices {
			if !inv.IsOpen() {
				continue
			}
			customer := st.contacts[inv.CustomerID]
			res = append(res, domain.InvoiceSummary{Invoice: inv, CustomerName: customer.Name, CustomerEmail: customer.Email})
		}
	})
	slices.SortFunc(res, func(a, b domain.InvoiceSummary) int {
		if c := a.DueDate.Compare(b.DueDate); c != 0 {
			return c
		}
		return strings.Compare(a.InvoiceNumber, b.InvoiceNumber)
	})
	return res, nil
}
