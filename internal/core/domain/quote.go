package domain

import "time"

// Quote is a priced offer to a customer that an invoice may reference.
type Quote struct {
	QuoteID     string    `json:"quoteID"`
	QuoteNumber string    `json:"quoteNumber"`
	CustomerID  string    `json:"customerID"`
	QuoteDate   time.Time `json:"quoteDate"`
}
