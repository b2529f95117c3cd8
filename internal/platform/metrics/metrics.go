package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "books_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "books_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	paymentsAllocatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "books_payments_allocated_total",
		Help: "Payment allocations attempted, labeled by outcome",
	}, []string{"outcome"})

	paymentAmountAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "books_payment_amount_applied_total",
		Help: "Sum of payment money applied to invoices",
	})

	creditsIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "books_credits_issued_total",
		Help: "Credits issued, labeled by source",
	}, []string{"source"})

	ledgerTransactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "books_ledger_transactions_total",
		Help: "Ledger entries recorded, labeled by type",
	}, []string{"type"})
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route, status string, latency time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// PaymentAllocated records a successful allocation and the amount applied to invoices.
func PaymentAllocated(applied decimal.Decimal) {
	paymentsAllocatedTotal.WithLabelValues("success").Inc()
	paymentAmountAllocated.Add(applied.InexactFloat64())
}

// PaymentAllocationFailed records an allocation that was rolled back.
func PaymentAllocationFailed() {
	paymentsAllocatedTotal.WithLabelValues("failure").Inc()
}

// CreditIssued records a credit of the given source.
func CreditIssued(source string) {
	creditsIssuedTotal.WithLabelValues(source).Inc()
}

// LedgerTransactionRecorded records one ledger entry of the given type.
func LedgerTransactionRecorded(txnType string) {
	ledgerTransactionsTotal.WithLabelValues(txnType).Inc()
}
