package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest is a single deposit or withdrawal against an account.
type RecordTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=deposit withdrawal"`
	Amount          decimal.Decimal        `json:"amount" binding:"decimal_gt0"`
	Description     string                 `json:"description"`
	ReferenceNumber string                 `json:"referenceNumber"`
	// TransactionDate defaults to today when omitted.
	TransactionDate Date `json:"transactionDate"`
}

// StatementParams are the optional window bounds of an account statement.
type StatementParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	TransactionDate Date            `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// StatementResponse is an account statement over a window.
type StatementResponse struct {
	Account      AccountResponse       `json:"account"`
	From         *Date                 `json:"from"`
	To           *Date                 `json:"to"`
	Transactions []TransactionResponse `json:"transactions"`
	Summary      struct {
		TotalDeposit    decimal.Decimal `json:"totalDeposit"`
		TotalWithdrawal decimal.Decimal `json:"totalWithdrawal"`
		Balance         decimal.Decimal `json:"balance"`
	} `json:"summary"`
}

// ToTransactionResponse converts a domain.AccountTransaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.AccountTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		TransactionType: string(txn.TransactionType),
		Amount:          domain.RoundMoney(txn.Amount),
		Description:     txn.Description,
		ReferenceNumber: txn.ReferenceNumber,
		TransactionDate: NewDate(txn.TransactionDate),
		CreatedAt:       txn.CreatedAt,
	}
}

// ToStatementResponse converts a domain statement to its DTO.
func ToStatementResponse(st *domain.AccountStatement) StatementResponse {
	resp := StatementResponse{
		Account:      ToAccountResponse(&st.Account),
		Transactions: make([]TransactionResponse, len(st.Transactions)),
	}
	if st.From != nil {
		from := NewDate(*st.From)
		resp.From = &from
	}
	if st.To != nil {
		to := NewDate(*st.To)
		resp.To = &to
	}
	for i, txn := range st.Transactions {
		resp.Transactions[i] = ToTransactionResponse(&txn)
	}
	resp.Summary.TotalDeposit = st.TotalDeposit
	resp.Summary.TotalWithdrawal = st.TotalWithdrawal
	resp.Summary.Balance = st.Balance
	return resp
}
