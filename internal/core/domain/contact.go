package domain

import "strings"

// ContactType distinguishes customers from vendors.
type ContactType string

const (
	Customer ContactType = "customer"
	Vendor   ContactType = "vendor"
)

// IsValid reports whether t is customer or vendor.
func (t ContactType) IsValid() bool {
	return t == Customer || t == Vendor
}

// Contact is a customer or vendor the business trades with.
type Contact struct {
	ContactID   string      `json:"contactID"`
	Name        string      `json:"name"`
	ContactType ContactType `json:"contactType"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Address     string      `json:"address"`
	AuditFields
}

// ContactUpdate holds the fields of a partial contact update. Nil means "leave as is".
type ContactUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// IsEmpty reports whether no field was supplied.
func (u ContactUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.Address == nil
}

// Apply copies the supplied fields onto c.
func (u ContactUpdate) Apply(c *Contact) {
	if u.Name != nil {
		c.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.Address != nil {
		c.Address = *u.Address
	}
}
