package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one line of an invoice as submitted by a client.
type LineItemRequest struct {
	ItemName    string          `json:"itemName" binding:"required"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity" binding:"decimal_gt0"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"decimal_gt0"`
}

// ToDomainLineItems converts request lines to domain line items without ids or totals.
func ToDomainLineItems(items []LineItemRequest) []domain.InvoiceLineItem {
	res := make([]domain.InvoiceLineItem, len(items))
	for i, item := range items {
		res[i] = domain.InvoiceLineItem{
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return res
}

// CreateInvoiceRequest defines the data needed to create an invoice with its line items.
type CreateInvoiceRequest struct {
	InvoiceNumber      string               `json:"invoiceNumber" binding:"required"`
	CustomerID         string               `json:"customerID" binding:"required"`
	QuoteID            *string              `json:"quoteID"`
	InvoiceDate        Date                 `json:"invoiceDate"`
	DueDate            Date                 `json:"dueDate"`
	DiscountPercentage decimal.Decimal      `json:"discountPercentage" binding:"decimal_gte0"`
	TaxAmount          decimal.Decimal      `json:"taxAmount" binding:"decimal_gte0"`
	Status             domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=draft sent"`
	Notes              string               `json:"notes"`
	LineItems          []LineItemRequest    `json:"lineItems" binding:"required,min=1,dive"`
}

// UpdateInvoiceRequest carries only the fields to change. LineItems, when present,
// replaces every existing line item.
type UpdateInvoiceRequest struct {
	InvoiceDate        *Date                 `json:"invoiceDate"`
	DueDate            *Date                 `json:"dueDate"`
	DiscountPercentage *decimal.Decimal      `json:"discountPercentage" binding:"omitempty,decimal_gte0"`
	TaxAmount          *decimal.Decimal      `json:"taxAmount" binding:"omitempty,decimal_gte0"`
	Status             *domain.InvoiceStatus `json:"status" binding:"omitempty,oneof=draft sent overdue cancelled"`
	Notes              *string               `json:"notes"`
	LineItems          []LineItemRequest     `json:"lineItems" binding:"omitempty,min=1,dive"`
}

// IsEmpty reports whether no field was supplied.
func (r UpdateInvoiceRequest) IsEmpty() bool {
	return r.InvoiceDate == nil && r.DueDate == nil && r.DiscountPercentage == nil &&
		r.TaxAmount == nil && r.Status == nil && r.Notes == nil && r.LineItems == nil
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status     string `form:"status" binding:"omitempty,oneof=draft sent partial paid overdue cancelled"`
	CustomerID string `form:"customerID"`
	Limit      int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken  string `form:"nextToken"`
}

// InvoiceTotalsResponse groups an invoice's money fields.
type InvoiceTotalsResponse struct {
	Subtotal           decimal.Decimal `json:"subtotal"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
	DiscountAmount     decimal.Decimal `json:"discountAmount"`
	TaxAmount          decimal.Decimal `json:"taxAmount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PaidAmount         decimal.Decimal `json:"paidAmount"`
	BalanceDue         decimal.Decimal `json:"balanceDue"`
}

// InvoiceResponse defines the data returned for an invoice header.
type InvoiceResponse struct {
	InvoiceID     string                `json:"invoiceID"`
	InvoiceNumber string                `json:"invoiceNumber"`
	CustomerID    string                `json:"customerID"`
	CustomerName  string                `json:"customerName,omitempty"`
	CustomerEmail string                `json:"customerEmail,omitempty"`
	QuoteID       *string               `json:"quoteID"`
	InvoiceDate   Date                  `json:"invoiceDate"`
	DueDate       Date                  `json:"dueDate"`
	Status        string                `json:"status"`
	Notes         string                `json:"notes"`
	Totals        InvoiceTotalsResponse `json:"totals"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	ItemName    string          `json:"itemName"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// InvoiceWithItemsResponse is returned after creating or updating an invoice.
type InvoiceWithItemsResponse struct {
	InvoiceResponse
	LineItems []LineItemResponse `json:"lineItems"`
}

// ListInvoicesResponse is one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

func toInvoiceTotalsResponse(inv *domain.Invoice) InvoiceTotalsResponse {
	return InvoiceTotalsResponse{
		Subtotal:           domain.RoundMoney(inv.Subtotal),
		DiscountPercentage: inv.DiscountPercentage,
		DiscountAmount:     domain.RoundMoney(inv.DiscountAmount),
		TaxAmount:          domain.RoundMoney(inv.TaxAmount),
		TotalAmount:        domain.RoundMoney(inv.TotalAmount),
		PaidAmount:         domain.RoundMoney(inv.PaidAmount),
		BalanceDue:         domain.RoundMoney(inv.BalanceDue),
	}
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:     inv.InvoiceID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		QuoteID:       inv.QuoteID,
		InvoiceDate:   NewDate(inv.InvoiceDate),
		DueDate:       NewDate(inv.DueDate),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		Totals:        toInvoiceTotalsResponse(inv),
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// ToLineItemResponses converts domain line items to DTOs.
func ToLineItemResponses(items []domain.InvoiceLineItem) []LineItemResponse {
	res := make([]LineItemResponse, len(items))
	for i, item := range items {
		res[i] = LineItemResponse{
			LineItemID:  item.LineItemID,
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   domain.RoundMoney(item.UnitPrice),
			LineTotal:   domain.RoundMoney(item.LineTotal),
			CreatedAt:   item.CreatedAt,
		}
	}
	return res
}

// ToInvoiceWithItemsResponse converts an invoice and its line items.
func ToInvoiceWithItemsResponse(inv *domain.Invoice, items []domain.InvoiceLineItem) InvoiceWithItemsResponse {
	return InvoiceWithItemsResponse{
		InvoiceResponse: ToInvoiceResponse(inv),
		LineItems:       ToLineItemResponses(items),
	}
}

// ToListInvoicesResponse converts a page of invoice summaries.
func ToListInvoicesResponse(invoices []domain.InvoiceSummary, nextToken *string) ListInvoicesResponse {
	res := ListInvoicesResponse{
		Invoices:  make([]InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i, inv := range invoices {
		r := ToInvoiceResponse(&inv.Invoice)
		r.CustomerName = inv.CustomerName
		r.CustomerEmail = inv.CustomerEmail
		res.Invoices[i] = r
	}
	return res
}
