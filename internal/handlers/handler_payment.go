package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.allocatePayment)
		payments.GET("/:id", h.getPayment)
	}
}

// allocatePayment godoc
// @Summary Record a payment and allocate it to invoices
// @Description Applies the payment to the target invoices. Excess on an invoice becomes a credit (or fails under the reject policy); the cash is posted per account split.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment and allocations"
// @Success 201 {object} dto.AllocatePaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or over-allocation"
// @Failure 404 {object} map[string]string "Contact, account or invoice not found"
// @Failure 409 {object} map[string]string "Payment number already used"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /payments [post]
func (h *paymentHandler) allocatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	res, err := h.paymentService.AllocatePayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", res.Payment.PaymentID),
		slog.Int("allocations", len(res.Allocations)),
		slog.Int("credits", len(res.Credits)),
	)
	c.JSON(http.StatusCreated, dto.ToAllocatePaymentResponse(res))
}

// getPayment godoc
// @Summary Get a payment
// @Description A stored payment with its allocations and account splits
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentDetailResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	detail, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentDetailResponse(detail))
}
