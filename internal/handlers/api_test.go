package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/SscSPs/books_backend/internal/core/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/handlers"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/SscSPs/books_backend/internal/platform/clock"
	"github.com/SscSPs/books_backend/internal/platform/config"
	"github.com/SscSPs/books_backend/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const unappliedAccountID = "acc-unapplied"

// APITestSuite drives the real services over the in-memory store through the HTTP layer.
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	bankID string
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	suite.Require().NoError(store.Accounts().SaveAccount(context.Background(), domain.Account{
		AccountID:   unappliedAccountID,
		Name:        "Unapplied Funds",
		AccountType: domain.Liability,
		IsActive:    true,
	}))

	cfg := &config.Config{
		UnappliedFundsAccountID: unappliedAccountID,
		OverpaymentPolicy:       string(domain.OverpaymentCredit),
	}
	svc := services.NewServiceContainerWithClock(cfg, store, clock.NewFake(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)))

	suite.router = gin.New()
	suite.router.Use(middleware.StructuredLoggingMiddleware(slog.Default()))
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, svc, nil))

	var bank dto.AccountResponse
	suite.call(http.MethodPost, "/api/v1/accounts", map[string]any{"name": "Operating Bank", "accountType": "asset"}, http.StatusCreated, &bank)
	suite.bankID = bank.AccountID
}

// call sends body as JSON, asserts the status and decodes the response into out when given.
func (suite *APITestSuite) call(method, url string, body any, wantStatus int, out any) *httptest.ResponseRecorder {
	suite.T().Helper()
	var req *http.Request
	if body == nil {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		req, _ = http.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(wantStatus, w.Code, w.Body.String())
	if out != nil {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func (suite *APITestSuite) createCustomer(name string) dto.ContactResponse {
	var c dto.ContactResponse
	suite.call(http.MethodPost, "/api/v1/contacts/customer", map[string]any{"name": name, "email": "billing@" + name + ".test"}, http.StatusCreated, &c)
	return c
}

func (suite *APITestSuite) createInvoice(customerID, number, price string) dto.InvoiceWithItemsResponse {
	var inv dto.InvoiceWithItemsResponse
	suite.call(http.MethodPost, "/api/v1/invoices", map[string]any{
		"invoiceNumber": number,
		"customerID":    customerID,
		"invoiceDate":   "2024-02-01",
		"dueDate":       "2024-02-15",
		"status":        "sent",
		"lineItems": []map[string]any{
			{"itemName": "Consulting", "quantity": "1", "unitPrice": price},
		},
	}, http.StatusCreated, &inv)
	return inv
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (suite *APITestSuite) TestHealth() {
	w := suite.call(http.MethodGet, "/health", nil, http.StatusOK, nil)
	suite.Contains(w.Body.String(), `"ok"`)
}

func (suite *APITestSuite) TestHealth_Unavailable() {
	r := gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(r, &config.Config{}, services.NewServiceContainer(&config.Config{}, memory.NewStore()),
		func(context.Context) error { return errors.New("connection refused") }))

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *APITestSuite) TestAccountLifecycle() {
	var acc dto.AccountResponse
	suite.call(http.MethodPost, "/api/v1/accounts", map[string]any{
		"name": "Petty Cash", "accountType": "asset", "initialBalance": "40.00",
	}, http.StatusCreated, &acc)
	suite.True(acc.Balance.Equal(dec("40")))

	var got dto.AccountResponse
	suite.call(http.MethodGet, "/api/v1/accounts/"+acc.AccountID, nil, http.StatusOK, &got)
	suite.Equal("Petty Cash", got.Name)

	suite.call(http.MethodGet, "/api/v1/accounts/missing", nil, http.StatusNotFound, nil)

	suite.call(http.MethodDelete, "/api/v1/accounts/"+acc.AccountID, nil, http.StatusNoContent, nil)

	var list dto.ListAccountsResponse
	suite.call(http.MethodGet, "/api/v1/accounts?type=asset", nil, http.StatusOK, &list)
	suite.Len(list.Accounts, 1)
	suite.Equal(suite.bankID, list.Accounts[0].AccountID)

	// Deactivated accounts reject new entries.
	suite.call(http.MethodPost, "/api/v1/accounts/transactions", map[string]any{
		"accountID": acc.AccountID, "transactionType": "deposit", "amount": "5",
	}, http.StatusBadRequest, nil)
}

func (suite *APITestSuite) TestTransactionsAndStatement() {
	suite.call(http.MethodPost, "/api/v1/accounts/transactions", map[string]any{
		"accountID": suite.bankID, "transactionType": "deposit", "amount": "100", "transactionDate": "2024-03-01",
	}, http.StatusCreated, nil)
	suite.call(http.MethodPost, "/api/v1/accounts/transactions", map[string]any{
		"accountID": suite.bankID, "transactionType": "withdrawal", "amount": "30", "transactionDate": "2024-03-10",
	}, http.StatusCreated, nil)
	suite.call(http.MethodPost, "/api/v1/accounts/transactions", map[string]any{
		"accountID": suite.bankID, "transactionType": "deposit", "amount": "0",
	}, http.StatusBadRequest, nil)

	var st dto.StatementResponse
	suite.call(http.MethodGet, "/api/v1/accounts/"+suite.bankID+"/statements?from=2024-03-05", nil, http.StatusOK, &st)
	suite.Len(st.Transactions, 1)
	suite.True(st.Summary.TotalWithdrawal.Equal(dec("30")))
	suite.True(st.Summary.Balance.Equal(dec("-30")))

	var bal dto.AccountBalanceResponse
	suite.call(http.MethodGet, "/api/v1/accounts/"+suite.bankID+"/balance", nil, http.StatusOK, &bal)
	suite.True(bal.Balance.Equal(dec("70")))
}

func (suite *APITestSuite) TestContacts() {
	c := suite.createCustomer("globex")
	suite.Equal("customer", c.ContactType)

	var list dto.ListContactsResponse
	suite.call(http.MethodGet, "/api/v1/contacts/customer?page=1&limit=10", nil, http.StatusOK, &list)
	suite.Equal(1, list.Total)

	// A customer is invisible through the vendor routes.
	suite.call(http.MethodGet, "/api/v1/contacts/vendor/"+c.ContactID, nil, http.StatusNotFound, nil)

	suite.call(http.MethodPatch, "/api/v1/contacts/customer/"+c.ContactID, map[string]any{}, http.StatusBadRequest, nil)

	var updated dto.ContactResponse
	suite.call(http.MethodPatch, "/api/v1/contacts/customer/"+c.ContactID, map[string]any{"phone": "555-0100"}, http.StatusOK, &updated)
	suite.Equal("555-0100", updated.Phone)
	suite.Equal("globex", updated.Name)

	suite.call(http.MethodPost, "/api/v1/contacts/customer", map[string]any{"name": "x", "email": "not-an-email"}, http.StatusBadRequest, nil)
}

func (suite *APITestSuite) TestInvoiceCreateAndDuplicate() {
	c := suite.createCustomer("globex")
	inv := suite.createInvoice(c.ContactID, "INV-001", "300")

	suite.Len(inv.LineItems, 1)
	suite.True(inv.Totals.TotalAmount.Equal(dec("300")))
	suite.True(inv.Totals.BalanceDue.Equal(dec("300")))
	suite.Equal("sent", inv.Status)

	w := suite.call(http.MethodPost, "/api/v1/invoices", map[string]any{
		"invoiceNumber": "INV-001",
		"customerID":    c.ContactID,
		"lineItems":     []map[string]any{{"itemName": "Again", "quantity": "1", "unitPrice": "10"}},
	}, http.StatusConflict, nil)
	suite.Contains(w.Body.String(), "error")

	suite.call(http.MethodPost, "/api/v1/invoices", map[string]any{
		"invoiceNumber": "INV-002",
		"customerID":    c.ContactID,
		"lineItems":     []map[string]any{},
	}, http.StatusBadRequest, nil)

	var page dto.ListInvoicesResponse
	suite.call(http.MethodGet, "/api/v1/invoices?customerID="+c.ContactID, nil, http.StatusOK, &page)
	suite.Len(page.Invoices, 1)
	suite.Equal("globex", page.Invoices[0].CustomerName)
	suite.Nil(page.NextToken)
}

func (suite *APITestSuite) TestOverpaymentCreatesCredit() {
	c := suite.createCustomer("globex")
	inv := suite.createInvoice(c.ContactID, "INV-001", "300")

	var res dto.AllocatePaymentResponse
	suite.call(http.MethodPost, "/api/v1/payments", map[string]any{
		"paymentNumber":    "PAY-001",
		"paymentDate":      "2024-03-01",
		"paymentMethod":    "bank_transfer",
		"contactID":        c.ContactID,
		"amount":           "500",
		"depositAccountID": suite.bankID,
		"allocations":      []map[string]any{{"invoiceID": inv.InvoiceID, "amount": "500"}},
	}, http.StatusCreated, &res)

	suite.Require().Len(res.Allocations, 1)
	suite.True(res.Allocations[0].AllocatedAmount.Equal(dec("300")))
	suite.Require().Len(res.Credits, 1)
	suite.True(res.Credits[0].Amount.Equal(dec("200")))
	suite.Len(res.AccountSplits, 2)
	suite.Require().Len(res.Invoices, 1)
	suite.Equal("paid", res.Invoices[0].Status)

	var view dto.InvoiceViewResponse
	suite.call(http.MethodGet, "/api/v1/invoices/"+inv.InvoiceID, nil, http.StatusOK, &view)
	suite.Require().NotNil(view.Customer)
	suite.Equal("globex", view.Customer.Name)
	suite.Equal(1, view.PaymentSummary.TotalPayments)
	suite.True(view.PaymentSummary.RemainingBalance.IsZero())
	suite.Len(view.Credits, 1)
	suite.Require().Len(view.Payments, 1)
	suite.Len(view.Payments[0].AccountSplits, 2)

	var detail dto.PaymentDetailResponse
	suite.call(http.MethodGet, "/api/v1/payments/"+res.PaymentID, nil, http.StatusOK, &detail)
	suite.Equal("PAY-001", detail.PaymentNumber)

	var credits dto.ContactCreditsResponse
	suite.call(http.MethodGet, "/api/v1/contacts/customer/"+c.ContactID+"/credits", nil, http.StatusOK, &credits)
	suite.True(credits.Total.Equal(dec("200")))

	// Reusing the payment number is a conflict.
	suite.call(http.MethodPost, "/api/v1/payments", map[string]any{
		"paymentNumber":    "PAY-001",
		"paymentMethod":    "cash",
		"contactID":        c.ContactID,
		"amount":           "10",
		"depositAccountID": suite.bankID,
	}, http.StatusConflict, nil)
}

func (suite *APITestSuite) TestOverAllocationRejected() {
	c := suite.createCustomer("globex")
	inv := suite.createInvoice(c.ContactID, "INV-001", "1000")

	suite.call(http.MethodPost, "/api/v1/payments", map[string]any{
		"paymentNumber":    "PAY-001",
		"paymentMethod":    "cash",
		"contactID":        c.ContactID,
		"amount":           "500",
		"depositAccountID": suite.bankID,
		"allocations":      []map[string]any{{"invoiceID": inv.InvoiceID, "amount": "600"}},
	}, http.StatusBadRequest, nil)

	var view dto.InvoiceViewResponse
	suite.call(http.MethodGet, "/api/v1/invoices/"+inv.InvoiceID, nil, http.StatusOK, &view)
	suite.Empty(view.Payments)
	suite.True(view.Totals.BalanceDue.Equal(dec("1000")))
}

func (suite *APITestSuite) TestManualCredit() {
	c := suite.createCustomer("globex")

	var credit dto.CreditResponse
	suite.call(http.MethodPost, "/api/v1/credits", map[string]any{
		"contactID": c.ContactID, "amount": "25", "description": "Goodwill", "invoiceNumber": "INV-009",
	}, http.StatusCreated, &credit)
	suite.Contains(credit.Description, "INV-009")

	suite.call(http.MethodPost, "/api/v1/credits", map[string]any{
		"contactID": "missing", "amount": "25",
	}, http.StatusNotFound, nil)
}

func (suite *APITestSuite) TestReceivablesAging() {
	c := suite.createCustomer("globex")
	suite.createInvoice(c.ContactID, "INV-001", "300")

	var report dto.ReceivablesAgingResponse
	suite.call(http.MethodGet, "/api/v1/reports/receivables-aging?asOf=2024-03-15", nil, http.StatusOK, &report)
	suite.Equal("2024-03-15", report.AsOf)
	suite.True(report.TotalOutstanding.Equal(dec("300")))
	suite.Require().Len(report.Rows, 1)
	suite.Equal(29, report.Rows[0].Aging.DaysPastDue)
	suite.Equal("1-30", report.Rows[0].Aging.AgingBucket)

	var defaulted dto.ReceivablesAgingResponse
	suite.call(http.MethodGet, "/api/v1/reports/receivables-aging", nil, http.StatusOK, &defaulted)
	suite.Equal("2024-03-15", defaulted.AsOf)

	w := suite.call(http.MethodGet, "/api/v1/reports/receivables-aging?asOf=15-03-2024", nil, http.StatusBadRequest, nil)
	suite.Contains(w.Body.String(), "YYYY-MM-DD")
}

func (suite *APITestSuite) TestRequestIDEchoed() {
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal("req-123", w.Header().Get(middleware.RequestIDHeader))
}
