package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// CreditSource records why a credit was issued.
type CreditSource string

const (
	CreditFromOverpayment CreditSource = "overpayment"
	CreditFromAdjustment  CreditSource = "adjustment"
)

// Credit is money owed back to (or held for) a contact.
// Credits are recorded only; nothing consumes them automatically.
type Credit struct {
	CreditID    string          `json:"creditID"`
	ContactID   string          `json:"contactID"`
	ContactType ContactType     `json:"contactType"`
	Amount      decimal.Decimal `json:"amount"`
	Source      CreditSource    `json:"source"`
	Description string          `json:"description"`
	PaymentID   *string         `json:"paymentID,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`

	// Populated on reads that join the originating payment.
	PaymentNumber string `json:"paymentNumber,omitempty"`
}

// OverpaymentDescription is the description given to credits created from an overpaid invoice.
// Invoice views find their credits by searching for the invoice number in it.
func OverpaymentDescription(invoiceNumber string) string {
	return fmt.Sprintf("Overpayment on invoice %s", invoiceNumber)
}

// MentionsInvoice reports whether the credit's description references invoiceNumber as a
// whole token: INV-1 does not match a description naming INV-10 or XINV-1.
func (c Credit) MentionsInvoice(invoiceNumber string) bool {
	if invoiceNumber == "" {
		return false
	}
	desc := c.Description
	for offset := 0; ; {
		i := strings.Index(desc[offset:], invoiceNumber)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(invoiceNumber)
		before, _ := utf8.DecodeLastRuneInString(desc[:start])
		after, _ := utf8.DecodeRuneInString(desc[end:])
		if (start == 0 || !isInvoiceNumberRune(before)) && (end == len(desc) || !isInvoiceNumberRune(after)) {
			return true
		}
		offset = start + 1
	}
}

func isInvoiceNumberRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '/'
}

// ContactCredits lists a contact's credits with their total.
type ContactCredits struct {
	ContactID string          `json:"contactID"`
	Credits   []Credit        `json:"credits"`
	Total     decimal.Decimal `json:"total"`
}
