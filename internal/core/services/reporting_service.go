package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/books_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options),
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// ReceivablesAging classifies every open invoice as of asOf. A zero asOf means today.
func (s *reportingService) ReceivablesAging(ctx context.Context, asOf time.Time) (*domain.ReceivablesAgingReport, error) {
	if asOf.IsZero() {
		asOf = s.Today()
	}

	invoices, err := s.reportingRepo.ListOpenInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve open invoices",
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve open invoices: %w", err)
	}

	index := make(map[domain.AgingBucket]int, len(domain.AgingBuckets))
	buckets := make([]domain.BucketTotal, len(domain.AgingBuckets))
	exact := make([]decimal.Decimal, len(domain.AgingBuckets))
	for i, b := range domain.AgingBuckets {
		index[b] = i
		buckets[i] = domain.BucketTotal{Bucket: b, Amount: decimal.Zero}
		exact[i] = decimal.Zero
	}

	rows := make([]domain.ReceivableRow, 0, len(invoices))
	outstanding := make([]decimal.Decimal, 0, len(invoices))
	for _, inv := range invoices {
		if !inv.IsOpen() {
			continue
		}
		aging := accounting.ClassifyAging(inv.DueDate, asOf, inv.BalanceDue)
		rows = append(rows, domain.ReceivableRow{
			InvoiceID:     inv.InvoiceID,
			InvoiceNumber: inv.InvoiceNumber,
			CustomerID:    inv.CustomerID,
			CustomerName:  inv.CustomerName,
			DueDate:       inv.DueDate,
			BalanceDue:    domain.RoundMoney(inv.BalanceDue),
			Aging:         aging,
		})
		i := index[aging.Bucket]
		buckets[i].InvoiceCount++
		exact[i] = exact[i].Add(inv.BalanceDue)
		outstanding = append(outstanding, inv.BalanceDue)
	}
	for i := range buckets {
		buckets[i].Amount = domain.RoundMoney(exact[i])
	}

	report := &domain.ReceivablesAgingReport{
		AsOf:             asOf,
		Buckets:          buckets,
		Rows:             rows,
		TotalOutstanding: domain.SumMoney(outstanding...),
	}

	s.LogInfo(ctx, "Receivables aging report generated successfully",
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return report, nil
}
