package services

import (
	"context"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// IssueCreditParams describes a credit to create inside an existing unit of work.
type IssueCreditParams struct {
	Contact       domain.Contact
	Amount        decimal.Decimal
	Source        domain.CreditSource
	Description   string
	InvoiceNumber string
	PaymentID     *string
}

// CreditSvcFacade records credits owed to contacts.
type CreditSvcFacade interface {
	// IssueCredit records a manual credit in its own unit.
	IssueCredit(ctx context.Context, req dto.IssueCreditRequest) (*domain.Credit, error)

	// IssueCreditInUnit records a credit using repos from an enclosing unit of work.
	IssueCreditInUnit(ctx context.Context, repos portsrepo.Repositories, params IssueCreditParams) (*domain.Credit, error)

	// ListCredits returns a contact's credits newest first with their total.
	ListCredits(ctx context.Context, contactType domain.ContactType, contactID string) (*domain.ContactCredits, error)
}
