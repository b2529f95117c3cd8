package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableRow is one open invoice in the receivables aging report.
type ReceivableRow struct {
	InvoiceID     string          `json:"invoiceID"`
	InvoiceNumber string          `json:"invoiceNumber"`
	CustomerID    string          `json:"customerID"`
	CustomerName  string          `json:"customerName"`
	DueDate       time.Time       `json:"dueDate"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	Aging         Aging           `json:"aging"`
}

// BucketTotal is the outstanding balance in one aging bucket.
type BucketTotal struct {
	Bucket       AgingBucket     `json:"bucket"`
	InvoiceCount int             `json:"invoiceCount"`
	Amount       decimal.Decimal `json:"amount"`
}

// ReceivablesAgingReport classifies every open invoice by age as of a date.
type ReceivablesAgingReport struct {
	AsOf             time.Time       `json:"asOf"`
	Buckets          []BucketTotal   `json:"buckets"`
	Rows             []ReceivableRow `json:"rows"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}
