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
	"github.com/SscSPs/books_backend/internal/platform/clock"
	"github.com/SscSPs/books_backend/internal/platform/metrics"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// paymentService implements the PaymentSvcFacade interface
type paymentService struct {
	BaseService
	store              portsrepo.Store
	ledger             portssvc.LedgerWriterSvc
	credits            portssvc.CreditSvcFacade
	unappliedAccountID string
	defaultPolicy      domain.OverpaymentPolicy
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithUnappliedFundsAccount sets the account that receives money not applied to any invoice
// when a request does not name one.
func WithUnappliedFundsAccount(accountID string) PaymentServiceOption {
	return func(s *paymentService) {
		s.unappliedAccountID = accountID
	}
}

// WithOverpaymentPolicy sets the policy used when a request does not choose one.
func WithOverpaymentPolicy(policy domain.OverpaymentPolicy) PaymentServiceOption {
	return func(s *paymentService) {
		if policy.IsValid() {
			s.defaultPolicy = policy
		}
	}
}

// WithPaymentClock replaces the clock used for payment dates and timestamps.
func WithPaymentClock(c clock.Clock) PaymentServiceOption {
	return func(s *paymentService) {
		WithClock(c)(&s.BaseService)
	}
}

// NewPaymentService creates the payment allocator. Cash is posted through ledger and
// excess through credits, both inside the allocation's unit of work.
func NewPaymentService(store portsrepo.Store, ledger portssvc.LedgerWriterSvc, credits portssvc.CreditSvcFacade, options ...PaymentServiceOption) portssvc.PaymentSvcFacade {
	svc := &paymentService{
		BaseService:   newBaseService(nil),
		store:         store,
		ledger:        ledger,
		credits:       credits,
		defaultPolicy: domain.OverpaymentCredit,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// allocationPlan is a validated payment request, ready to run inside a unit.
type allocationPlan struct {
	payment            domain.Payment
	contact            domain.Contact
	targets            []domain.AllocationTarget
	depositAccount     domain.Account
	unappliedAccountID string
	policy             domain.OverpaymentPolicy
}

func (s *paymentService) AllocatePayment(ctx context.Context, req dto.CreatePaymentRequest) (*domain.PaymentAllocationResult, error) {
	plan, err := s.plan(ctx, req)
	if err == nil {
		var result *domain.PaymentAllocationResult
		err = s.store.Atomic(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
			result, err = s.allocate(ctx, repos, plan)
			return err
		})
		if err == nil {
			applied := domain.SumMoney(allocatedAmounts(result.Allocations)...)
			metrics.PaymentAllocated(applied)
			for _, c := range result.Credits {
				metrics.CreditIssued(string(c.Source))
			}
			s.LogInfo(ctx, "Payment allocated",
				slog.String("payment_id", result.Payment.PaymentID),
				slog.String("payment_number", result.Payment.PaymentNumber),
				slog.String("amount", result.Payment.Amount.String()),
				slog.String("applied", applied.String()),
				slog.Int("credits", len(result.Credits)))
			return result, nil
		}
	}

	metrics.PaymentAllocationFailed()
	if apperrors.IsCallerError(err) {
		s.LogWarn(ctx, err, "Payment allocation rejected", slog.String("payment_number", req.PaymentNumber))
	} else {
		s.LogError(ctx, err, "Payment allocation failed", slog.String("payment_number", req.PaymentNumber))
	}
	return nil, err
}

// plan validates everything that can be checked before locking any invoice.
func (s *paymentService) plan(ctx context.Context, req dto.CreatePaymentRequest) (allocationPlan, error) {
	var p allocationPlan

	number := strings.TrimSpace(req.PaymentNumber)
	if number == "" {
		return p, fmt.Errorf("%w: payment number is required", apperrors.ErrValidation)
	}
	amount, err := domain.PositiveMoney("payment amount", req.Amount)
	if err != nil {
		return p, err
	}

	p.policy = req.OverpaymentPolicy
	if p.policy == "" {
		p.policy = s.defaultPolicy
	}
	if !p.policy.IsValid() {
		return p, fmt.Errorf("%w: unknown overpayment policy %q", apperrors.ErrValidation, p.policy)
	}

	requested := decimal.Zero
	for _, t := range req.Targets() {
		t.Amount, err = domain.PositiveMoney("allocation amount", t.Amount)
		if err != nil {
			return p, err
		}
		requested = requested.Add(t.Amount)
		p.targets = append(p.targets, t)
	}
	if requested.GreaterThan(amount) {
		return p, fmt.Errorf("%w: allocations total %s but the payment is %s", apperrors.ErrOverAllocation, requested, amount)
	}

	contact, err := s.store.Contacts().FindContactByID(ctx, req.ContactID)
	if err != nil {
		return p, err
	}
	p.contact = *contact

	deposit, err := s.store.Accounts().FindAccountByID(ctx, req.DepositAccountID)
	if err != nil {
		return p, fmt.Errorf("deposit account %s: %w", req.DepositAccountID, err)
	}
	p.depositAccount = *deposit

	p.unappliedAccountID = req.UnappliedAccountID
	if p.unappliedAccountID == "" {
		p.unappliedAccountID = s.unappliedAccountID
	}

	paymentDate := req.PaymentDate.Time
	if paymentDate.IsZero() {
		paymentDate = s.Today()
	}
	p.payment = domain.Payment{
		PaymentID:       uuid.NewString(),
		PaymentNumber:   number,
		PaymentDate:     paymentDate,
		PaymentMethod:   req.PaymentMethod,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		ContactID:       contact.ContactID,
		Amount:          amount,
		CreatedAt:       s.Now(),
	}
	return p, nil
}

// allocate writes the payment and everything derived from it using the unit's repos.
func (s *paymentService) allocate(ctx context.Context, repos portsrepo.Repositories, p allocationPlan) (*domain.PaymentAllocationResult, error) {
	payment := p.payment
	now := payment.CreatedAt

	if err := repos.Payments().SavePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment %s: %w", payment.PaymentNumber, err)
	}

	result := &domain.PaymentAllocationResult{
		Payment:     payment,
		Allocations: []domain.PaymentAllocation{},
		Splits:      []domain.PaymentAccountSplit{},
		Credits:     []domain.Credit{},
		Invoices:    []domain.Invoice{},
	}

	touched := make(map[string]*domain.Invoice)
	var order []string
	applied := decimal.Zero

	for _, target := range p.targets {
		invoice, ok := touched[target.InvoiceID]
		if !ok {
			found, err := repos.Invoices().FindInvoiceByIDForUpdate(ctx, target.InvoiceID)
			if err != nil {
				return nil, err
			}
			if found.CustomerID != p.contact.ContactID {
				return nil, fmt.Errorf("%w: invoice %s does not belong to contact %s", apperrors.ErrValidation,
					found.InvoiceNumber, p.contact.ContactID)
			}
			if found.Status == domain.InvoiceCancelled {
				return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, found.InvoiceNumber)
			}
			invoice = found
			touched[target.InvoiceID] = invoice
			order = append(order, target.InvoiceID)
		}

		portion := decimal.Max(decimal.Zero, domain.MinMoney(target.Amount, invoice.BalanceDue))
		overflow := target.Amount.Sub(portion)
		if overflow.IsPositive() && p.policy == domain.OverpaymentReject {
			return nil, fmt.Errorf("%w: %s requested for invoice %s but only %s is due", apperrors.ErrOverAllocation,
				target.Amount, invoice.InvoiceNumber, invoice.BalanceDue)
		}

		if portion.IsPositive() {
			allocation := domain.PaymentAllocation{
				AllocationID:    uuid.NewString(),
				PaymentID:       payment.PaymentID,
				ReferenceType:   domain.AllocateToInvoice,
				ReferenceID:     invoice.InvoiceID,
				AllocatedAmount: portion,
				CreatedAt:       now,
			}
			if err := repos.Payments().SaveAllocation(ctx, allocation); err != nil {
				return nil, fmt.Errorf("failed to save allocation to invoice %s: %w", invoice.InvoiceNumber, err)
			}
			invoice.ApplyPayment(portion)
			applied = applied.Add(portion)
			result.Allocations = append(result.Allocations, allocation)
		}

		if overflow.IsPositive() {
			credit, err := s.credits.IssueCreditInUnit(ctx, repos, portssvc.IssueCreditParams{
				Contact:       p.contact,
				Amount:        overflow,
				Source:        domain.CreditFromOverpayment,
				Description:   domain.OverpaymentDescription(invoice.InvoiceNumber),
				InvoiceNumber: invoice.InvoiceNumber,
				PaymentID:     &payment.PaymentID,
			})
			if err != nil {
				return nil, err
			}
			result.Credits = append(result.Credits, *credit)
		}
	}

	for _, id := range order {
		invoice := touched[id]
		if !invoice.IsBalanced() {
			return nil, fmt.Errorf("%w: invoice %s balance %s != total %s - paid %s", apperrors.ErrInternalConsistency,
				invoice.InvoiceNumber, invoice.BalanceDue, invoice.TotalAmount, invoice.PaidAmount)
		}
		invoice.Touch(now)
		if err := repos.Invoices().UpdateInvoice(ctx, *invoice); err != nil {
			return nil, fmt.Errorf("failed to update invoice %s: %w", invoice.InvoiceNumber, err)
		}
		result.Invoices = append(result.Invoices, *invoice)
	}

	splits, err := s.splitPayment(ctx, repos, p, applied)
	if err != nil {
		return nil, err
	}
	for _, split := range splits {
		if err := repos.Payments().SaveSplit(ctx, split); err != nil {
			return nil, fmt.Errorf("failed to save split to account %s: %w", split.AccountID, err)
		}
		_, err := s.ledger.RecordTransactionInUnit(ctx, repos, domain.AccountTransaction{
			AccountID:       split.AccountID,
			TransactionType: domain.Deposit,
			Amount:          split.Amount,
			Description:     fmt.Sprintf("Payment %s", payment.PaymentNumber),
			ReferenceNumber: payment.PaymentNumber,
			TransactionDate: payment.PaymentDate,
		})
		if err != nil {
			return nil, err
		}
	}
	result.Splits = splits
	return result, nil
}

// splitPayment decides which accounts receive the payment's cash: the applied part goes to
// the deposit account and the rest to the unapplied funds account.
func (s *paymentService) splitPayment(ctx context.Context, repos portsrepo.Repositories, p allocationPlan, applied decimal.Decimal) ([]domain.PaymentAccountSplit, error) {
	amount := p.payment.Amount
	remainder := amount.Sub(applied)
	splits := make([]domain.PaymentAccountSplit, 0, 2)

	if applied.IsPositive() {
		splits = append(splits, domain.PaymentAccountSplit{
			SplitID:     uuid.NewString(),
			PaymentID:   p.payment.PaymentID,
			AccountID:   p.depositAccount.AccountID,
			Amount:      applied,
			CreatedAt:   p.payment.CreatedAt,
			AccountName: p.depositAccount.Name,
			AccountType: p.depositAccount.AccountType,
		})
	}
	if remainder.IsPositive() {
		if p.unappliedAccountID == "" {
			return nil, fmt.Errorf("%w: %s of payment %s is unapplied and no unapplied funds account is configured",
				apperrors.ErrValidation, remainder, p.payment.PaymentNumber)
		}
		account, err := repos.Accounts().FindAccountByID(ctx, p.unappliedAccountID)
		if err != nil {
			return nil, fmt.Errorf("unapplied funds account %s: %w", p.unappliedAccountID, err)
		}
		splits = append(splits, domain.PaymentAccountSplit{
			SplitID:     uuid.NewString(),
			PaymentID:   p.payment.PaymentID,
			AccountID:   account.AccountID,
			Amount:      remainder,
			CreatedAt:   p.payment.CreatedAt,
			AccountName: account.Name,
			AccountType: account.AccountType,
		})
	}

	if err := accounting.ValidateSplits(amount, splits); err != nil {
		return nil, err
	}
	return splits, nil
}

func allocatedAmounts(allocs []domain.PaymentAllocation) []decimal.Decimal {
	res := make([]decimal.Decimal, len(allocs))
	for i, a := range allocs {
		res[i] = a.AllocatedAmount
	}
	return res
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.PaymentDetail, error) {
	payment, err := s.store.Payments().FindPaymentByID(ctx, paymentID)
	if err != nil {
		if !apperrors.IsCallerError(err) {
			s.LogError(ctx, err, "Failed to find payment", slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	allocations, err := s.store.Payments().ListAllocationsByPayment(ctx, paymentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment allocations", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to list allocations of payment %s: %w", paymentID, err)
	}
	splits, err := s.store.Payments().ListSplitsByPaymentIDs(ctx, []string{paymentID})
	if err != nil {
		s.LogError(ctx, err, "Failed to list payment splits", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to list splits of payment %s: %w", paymentID, err)
	}
	if allocations == nil {
		allocations = []domain.PaymentAllocation{}
	}
	if splits == nil {
		splits = []domain.PaymentAccountSplit{}
	}

	return &domain.PaymentDetail{Payment: *payment, Allocations: allocations, Splits: splits}, nil
}
