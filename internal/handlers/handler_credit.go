package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type creditHandler struct {
	creditService portssvc.CreditSvcFacade
}

func newCreditHandler(cs portssvc.CreditSvcFacade) *creditHandler {
	return &creditHandler{creditService: cs}
}

func registerCreditRoutes(rg *gin.RouterGroup, creditService portssvc.CreditSvcFacade) {
	h := newCreditHandler(creditService)

	rg.POST("/credits", h.issueCredit)
	rg.GET("/contacts/:type/:id/credits", h.listCredits)
}

// issueCredit godoc
// @Summary Issue a manual credit
// @Description Records an adjustment credit for a contact. An invoice number, when given, is embedded in the description.
// @Tags credits
// @Accept  json
// @Produce  json
// @Param   credit body dto.IssueCreditRequest true "Credit"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Contact or payment not found"
// @Router /credits [post]
func (h *creditHandler) issueCredit(c *gin.Context) {
	var req dto.IssueCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	credit, err := h.creditService.IssueCredit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to issue credit")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Credit issued", slog.String("credit_id", credit.CreditID))
	c.JSON(http.StatusCreated, dto.ToCreditResponse(credit))
}

// listCredits godoc
// @Summary List a contact's credits
// @Description Credits newest first with their total
// @Tags credits
// @Produce  json
// @Param   type path string true "customer or vendor"
// @Param   id path string true "Contact ID"
// @Success 200 {object} dto.ContactCreditsResponse
// @Failure 404 {object} map[string]string "Contact not found"
// @Router /contacts/{type}/{id}/credits [get]
func (h *creditHandler) listCredits(c *gin.Context) {
	credits, err := h.creditService.ListCredits(c.Request.Context(), contactType(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list credits")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactCreditsResponse(credits))
}
