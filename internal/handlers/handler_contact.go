package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/books_backend/internal/core/domain"
	portssvc "github.com/SscSPs/books_backend/internal/core/ports/services"
	"github.com/SscSPs/books_backend/internal/dto"
	"github.com/SscSPs/books_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// contactHandler handles customers and vendors. The contact type is the first path segment.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := rg.Group("/contacts/:type")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:id", h.getContact)
		contacts.PATCH("/:id", h.updateContact)
	}
}

func contactType(c *gin.Context) domain.ContactType {
	return domain.ContactType(c.Param("type"))
}

// createContact godoc
// @Summary Create a customer or vendor
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   type path string true "customer or vendor"
// @Param   contact body dto.CreateContactRequest true "Contact details"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create contact"
// @Router /contacts/{type} [post]
func (h *contactHandler) createContact(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), contactType(c), req)
	if err != nil {
		respondError(c, err, "Failed to create contact")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Contact created", slog.String("contact_id", contact.ContactID))
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

// listContacts godoc
// @Summary List customers or vendors
// @Tags contacts
// @Produce  json
// @Param   type path string true "customer or vendor"
// @Param   page query int false "Page number" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} dto.ListContactsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list contacts"
// @Router /contacts/{type} [get]
func (h *contactHandler) listContacts(c *gin.Context) {
	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}

	contacts, total, err := h.contactService.ListContacts(c.Request.Context(), contactType(c), params)
	if err != nil {
		respondError(c, err, "Failed to list contacts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListContactsResponse(contacts, params.Page, params.Limit, total))
}

// getContact godoc
// @Summary Get a customer or vendor
// @Tags contacts
// @Produce  json
// @Param   type path string true "customer or vendor"
// @Param   id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 404 {object} map[string]string "Contact not found"
// @Router /contacts/{type}/{id} [get]
func (h *contactHandler) getContact(c *gin.Context) {
	contact, err := h.contactService.GetContact(c.Request.Context(), contactType(c), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

// updateContact godoc
// @Summary Partially update a customer or vendor
// @Description Only the supplied fields change. A request with no fields is rejected.
// @Tags contacts
// @Accept  json
// @Produce  json
// @Param   type path string true "customer or vendor"
// @Param   id path string true "Contact ID"
// @Param   contact body dto.UpdateContactRequest true "Fields to change"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Contact not found"
// @Router /contacts/{type}/{id} [patch]
func (h *contactHandler) updateContact(c *gin.Context) {
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "request format")
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), contactType(c), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}
