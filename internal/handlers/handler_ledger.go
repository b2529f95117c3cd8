package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers transaction, statement and balance routes under /accounts.
func registerLedgerRoutes(accounts *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	accounts.POST("/transactions", h.recordTransaction)
	accounts.GET("/:id/statements", h.getStatement)
	accounts.GET("/:id/balance", h.getBalance)
}

// recordTransaction godoc
// @Summary Record a ledger transaction
// @Description Appends a deposit or withdrawal to an active account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   transaction body dto.RecordTransactionRequest true "Transaction"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input or inactive account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record transaction"
// @Router /accounts/transactions [post]
func (h *ledgerHandler) recordTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	txn, err := h.ledgerService.RecordTransaction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record transaction")
		return
	}

	logger.Info("Transaction recorded", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// getStatement godoc
// @Summary Get an account statement
// @Description Lists an account's transactions in an inclusive date window, newest first, with totals over that window
// @Tags ledger
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   from query string false "Window start (YYYY-MM-DD)"
// @Param   to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Router /accounts/{id}/statements [get]
func (h *ledgerHandler) getStatement(c *gin.Context) {
	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	from, err := dto.ParseOptionalDate(params.From)
	if err != nil {
		respondBindError(c, err, "from date")
		return
	}
	to, err := dto.ParseOptionalDate(params.To)
	if err != nil {
		respondBindError(c, err, "to date")
		return
	}

	statement, err := h.ledgerService.GetStatement(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err, "Failed to build statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}

// getBalance godoc
// @Summary Get account balance
// @Description Returns the all-time balance of an account
// @Tags ledger
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to calculate balance"
// @Router /accounts/{id}/balance [get]
func (h *ledgerHandler) getBalance(c *gin.Context) {
	accountID := c.Param("id")

	balance, err := h.ledgerService.GetBalance(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err, "Failed to calculate balance")
		return
	}

	c.JSON(http.StatusOK, dto.AccountBalanceResponse{AccountID: accountID, Balance: balance})
}
