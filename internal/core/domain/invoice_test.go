package domain_test

import (
	"testing"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestInvoice_ApplyPayment(t *testing.T) {
	inv := domain.Invoice{
		TotalAmount: d("950"),
		PaidAmount:  d("0"),
		BalanceDue:  d("950"),
		Status:      domain.InvoiceSent,
	}

	inv.ApplyPayment(d("400"))
	assert.Equal(t, domain.InvoicePartial, inv.Status)
	assert.True(t, d("550").Equal(inv.BalanceDue))
	assert.True(t, inv.IsBalanced())
	assert.True(t, inv.IsOpen())

	inv.ApplyPayment(d("550"))
	assert.Equal(t, domain.InvoicePaid, inv.Status)
	assert.True(t, inv.BalanceDue.IsZero())
	assert.True(t, inv.IsBalanced())
	assert.False(t, inv.IsOpen())
}

func TestInvoiceStatus_IsManual(t *testing.T) {
	assert.True(t, domain.InvoiceDraft.IsManual())
	assert.True(t, domain.InvoiceCancelled.IsManual())
	assert.False(t, domain.InvoicePaid.IsManual())
	assert.False(t, domain.InvoicePartial.IsManual())
	assert.False(t, domain.InvoiceStatus("void").IsValid())
}

func TestCredit_MentionsInvoice(t *testing.T) {
	c := domain.Credit{Description: domain.OverpaymentDescription("INV-0007")}
	assert.True(t, c.MentionsInvoice("INV-0007"))
	assert.False(t, c.MentionsInvoice("INV-0008"))
	assert.False(t, c.MentionsInvoice(""))
}

func TestCredit_MentionsInvoice_WholeNumberOnly(t *testing.T) {
	tests := []struct {
		desc   string
		number string
		want   bool
	}{
		{"Overpayment on invoice INV-10", "INV-1", false},
		{"Overpayment on invoice INV-1", "INV-10", false},
		{"Overpayment on invoice XINV-1", "INV-1", false},
		{"Overpayment on invoice INV-1/2", "INV-1", false},
		{"Overpayment on invoice INV-1", "INV-1", true},
		{"INV-1", "INV-1", true},
		{"Refund for INV-1.", "INV-1", true},
		{"Refund (INV-1) agreed", "INV-1", true},
		// A later exact occurrence still counts after an earlier partial one.
		{"INV-10 and INV-1", "INV-1", true},
	}
	for _, tt := range tests {
		t.Run(tt.desc+"/"+tt.number, func(t *testing.T) {
			c := domain.Credit{Description: tt.desc}
			assert.Equal(t, tt.want, c.MentionsInvoice(tt.number))
		})
	}
}
