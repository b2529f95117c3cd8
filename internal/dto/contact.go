package dto

import (
	"time"

	"github.com/SscSPs/books_backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact. The type comes from the path.
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateContactRequest carries only the fields to change.
type UpdateContactRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=1"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// ToContactUpdate converts the request into a domain update.
func (r UpdateContactRequest) ToContactUpdate() domain.ContactUpdate {
	return domain.ContactUpdate{Name: r.Name, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID   string    `json:"contactID"`
	Name        string    `json:"name"`
	ContactType string    `json:"contactType"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ListContactsResponse is one page of contacts.
type ListContactsResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
}

// ToContactResponse converts a domain.Contact to ContactResponse DTO
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:   c.ContactID,
		Name:        c.Name,
		ContactType: string(c.ContactType),
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToListContactsResponse builds a page response. TotalPages is ceil(total / limit).
func ToListContactsResponse(contacts []domain.Contact, page, limit, total int) ListContactsResponse {
	res := ListContactsResponse{
		Contacts: make([]ContactResponse, len(contacts)),
		Page:     page,
		Limit:    limit,
		Total:    total,
	}
	for i, c := range contacts {
		res.Contacts[i] = ToContactResponse(&c)
	}
	if limit > 0 {
		res.TotalPages = (total + limit - 1) / limit
	}
	return res
}
