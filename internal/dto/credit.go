package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IssueCreditRequest records a manual credit for a contact.
type IssueCreditRequest struct {
	ContactID   string          `json:"contactID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"decimal_gt0"`
	Description string          `json:"description"`
	// InvoiceNumber, when given, is embedded in the description so the invoice view finds the credit.
	InvoiceNumber string  `json:"invoiceNumber"`
	PaymentID     *string `json:"paymentID"`
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID      string          `json:"creditID"`
	ContactID     string          `json:"contactID"`
	ContactType   string          `json:"contactType"`
	Amount        decimal.Decimal `json:"amount"`
	Source        string          `json:"source"`
	Description   string          `json:"description"`
	PaymentID     *string         `json:"paymentID"`
	PaymentNumber string          `json:"paymentNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ContactCreditsResponse lists a contact's credits and their total.
type ContactCreditsResponse struct {
	ContactID string           `json:"contactID"`
	Credits   []CreditResponse `json:"credits"`
	Total     decimal.Decimal  `json:"total"`
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO
func ToCreditResponse(c *domain.Credit) CreditResponse {
	return CreditResponse{
		CreditID:      c.CreditID,
		ContactID:     c.ContactID,
		ContactType:   string(c.ContactType),
		Amount:        domain.RoundMoney(c.Amount),
		Source:        string(c.Source),
		Description:   c.Description,
		PaymentID:     c.PaymentID,
		PaymentNumber: c.PaymentNumber,
		CreatedAt:     c.CreatedAt,
	}
}

// ToCreditResponses converts a slice of credits.
func ToCreditResponses(credits []domain.Credit) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i, c := range credits {
		res[i] = ToCreditResponse(&c)
	}
	return res
}

// ToContactCreditsResponse converts a contact's credit listing.
func ToContactCreditsResponse(cc *domain.ContactCredits) ContactCreditsResponse {
	return ContactCreditsResponse{
		ContactID: cc.ContactID,
		Credits:   ToCreditResponses(cc.Credits),
		Total:     cc.Total,
	}
}
