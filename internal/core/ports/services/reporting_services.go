package services

import (
	"context"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// ReportingService defines operations for generating receivables reports
type ReportingService interface {
	// ReceivablesAging classifies every open invoice by age as of a specific date
	ReceivablesAging(ctx context.Context, asOf time.Time) (*domain.ReceivablesAgingReport, error)
}
