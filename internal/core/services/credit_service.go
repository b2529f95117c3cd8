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
	"github.com/SscSPs/books_backend/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type creditService struct {
	BaseService
	store portsrepo.Store
}

// NewCreditService creates the service that records credits owed to contacts.
func NewCreditService(store portsrepo.Store, options ...ServiceOption) portssvc.CreditSvcFacade {
	return &creditService{
		BaseService: newBaseService(options),
		store:       store,
	}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

// creditDescription makes sure the invoice number appears in the description, since
// that is how an invoice finds the credits raised against it.
func creditDescription(description, invoiceNumber string) string {
	description = strings.TrimSpace(description)
	switch {
	case invoiceNumber == "":
		return description
	case description == "":
		return fmt.Sprintf("Credit on invoice %s", invoiceNumber)
	case domain.Credit{Description: description}.MentionsInvoice(invoiceNumber):
		return description
	default:
		return fmt.Sprintf("%s (invoice %s)", description, invoiceNumber)
	}
}

func (s *creditService) IssueCredit(ctx context.Context, req dto.IssueCreditRequest) (*domain.Credit, error) {
	if _, err := domain.PositiveMoney("credit amount", req.Amount); err != nil {
		return nil, err
	}

	var credit *domain.Credit
	err := s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		contact, err := repos.Contacts().FindContactByID(ctx, req.ContactID)
		if err != nil {
			return err
		}
		if req.PaymentID != nil {
			if _, err := repos.Payments().FindPaymentByID(ctx, *req.PaymentID); err != nil {
				return err
			}
		}
		credit, err = s.IssueCreditInUnit(ctx, repos, portssvc.IssueCreditParams{
			Contact:       *contact,
			Amount:        req.Amount,
			Source:        domain.CreditFromAdjustment,
			Description:   req.Description,
			InvoiceNumber: req.InvoiceNumber,
			PaymentID:     req.PaymentID,
		})
		return err
	})
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to issue credit", slog.String("contact_id", req.ContactID))
		}
		return nil, err
	}

	metrics.CreditIssued(string(credit.Source))
	s.LogInfo(ctx, "Credit issued",
		slog.String("credit_id", credit.CreditID),
		slog.String("contact_id", credit.ContactID),
		slog.String("amount", credit.Amount.String()))
	return credit, nil
}

func (s *creditService) IssueCreditInUnit(ctx context.Context, repos portsrepo.Repositories, params portssvc.IssueCreditParams) (*domain.Credit, error) {
	amount, err := domain.PositiveMoney("credit amount", params.Amount)
	if err != nil {
		return nil, err
	}
	if params.Contact.ContactID == "" {
		return nil, fmt.Errorf("credit: %w", apperrors.ErrContactNotFound)
	}
	source := params.Source
	if source == "" {
		source = domain.CreditFromAdjustment
	}

	credit := domain.Credit{
		CreditID:    uuid.NewString(),
		ContactID:   params.Contact.ContactID,
		ContactType: params.Contact.ContactType,
		Amount:      amount,
		Source:      source,
		Description: creditDescription(params.Description, params.InvoiceNumber),
		PaymentID:   params.PaymentID,
		CreatedAt:   s.Now(),
	}
	if err := repos.Credits().SaveCredit(ctx, credit); err != nil {
		return nil, fmt.Errorf("failed to save credit for contact %s: %w", credit.ContactID, err)
	}

	s.LogDebug(ctx, "Credit recorded",
		slog.String("credit_id", credit.CreditID),
		slog.String("source", string(source)))
	return &credit, nil
}

func (s *creditService) ListCredits(ctx context.Context, contactType domain.ContactType, contactID string) (*domain.ContactCredits, error) {
	contact, err := s.store.Contacts().FindContactByID(ctx, contactID)
	if err != nil {
		return nil, err
	}
	if contactType != "" && contact.ContactType != contactType {
		return nil, fmt.Errorf("%s %s: %w", contactType, contactID, apperrors.ErrContactNotFound)
	}

	credits, err := s.store.Credits().ListCreditsByContact(ctx, contactID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to list credits for contact %s: %w", contactID, err)
	}
	if credits == nil {
		credits = []domain.Credit{}
	}

	amounts := make([]decimal.Decimal, len(credits))
	for i, c := range credits {
		amounts[i] = c.Amount
	}
	return &domain.ContactCredits{
		ContactID: contactID,
		Credits:   credits,
		Total:     domain.SumMoney(amounts...),
	}, nil
}
