package dto

import (
	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReceivableRowResponse is one open invoice in the aging report.
type ReceivableRowResponse struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerID    string          `json:"customerID"`
	CustomerName  string          `json:"customerName"`
	DueDate       Date            `json:"dueDate"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	Aging         AgingResponse   `json:"aging"`
}

// AgingBucketResponse is the outstanding amount in one bucket.
type AgingBucketResponse struct {
	Bucket       string          `json:"bucket"`
	InvoiceCount int             `json:"invoiceCount"`
	Amount       decimal.Decimal `json:"amount"`
}

// ReceivablesAgingResponse represents the receivables aging report response
type ReceivablesAgingResponse struct {
	AsOf             string                  `json:"asOf"`
	Buckets          []AgingBucketResponse   `json:"buckets"`
	Rows             []ReceivableRowResponse `json:"rows"`
	TotalOutstanding decimal.Decimal         `json:"totalOutstanding"`
}

// ToReceivablesAgingResponse converts a domain aging report to a DTO response
func ToReceivablesAgingResponse(report *domain.ReceivablesAgingReport) ReceivablesAgingResponse {
	response := ReceivablesAgingResponse{
		AsOf:             report.AsOf.Format(DateLayout),
		Buckets:          make([]AgingBucketResponse, len(report.Buckets)),
		Rows:             make([]ReceivableRowResponse, len(report.Rows)),
		TotalOutstanding: report.TotalOutstanding,
	}

	for i, b := range report.Buckets {
		response.Buckets[i] = AgingBucketResponse{
			Bucket:       string(b.Bucket),
			InvoiceCount: b.InvoiceCount,
			Amount:       b.Amount,
		}
	}

	for i, row := range report.Rows {
		response.Rows[i] = ReceivableRowResponse{
			InvoiceID:     row.InvoiceID,
			InvoiceNumber: row.InvoiceNumber,
			CustomerID:    row.CustomerID,
			CustomerName:  row.CustomerName,
			DueDate:       NewDate(row.DueDate),
			BalanceDue:    domain.RoundMoney(row.BalanceDue),
			Aging:         ToAgingResponse(row.Aging),
		}
	}

	return response
}
