package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of a resource.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure inside the application.
var ErrInternal = errors.New("internal error")

// Kind is a specific failure that belongs to one of the broad categories above.
// errors.Is matches both the kind itself and its category.
type Kind struct {
	msg      string
	category error
}

func (k *Kind) Error() string { return k.msg }

// Unwrap exposes the category so callers can branch on ErrValidation, ErrNotFound, etc.
func (k *Kind) Unwrap() error { return k.category }

func newKind(msg string, category error) *Kind {
	return &Kind{msg: msg, category: category}
}

var (
	// ErrInvalidAmount is returned for negative or non-positive amounts where they are not allowed.
	ErrInvalidAmount = newKind("invalid amount", ErrValidation)
	// ErrEmptyInvoice is returned when an invoice has no line items.
	ErrEmptyInvoice = newKind("invoice must have at least one line item", ErrValidation)
	// ErrOverAllocation is returned when requested allocations exceed what a payment can cover.
	ErrOverAllocation = newKind("allocation exceeds payment amount", ErrValidation)

	ErrAccountNotFound = newKind("account not found", ErrNotFound)
	ErrInvoiceNotFound = newKind("invoice not found", ErrNotFound)
	ErrContactNotFound = newKind("contact not found", ErrNotFound)
	ErrPaymentNotFound = newKind("payment not found", ErrNotFound)

	// ErrInternalConsistency signals that derived state failed to balance. It is always fatal
	// for the enclosing unit of work and must never be mapped to a caller error.
	ErrInternalConsistency = newKind("internal consistency violation", ErrInternal)
)

// AppError carries an HTTP-ish status code and a message alongside the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// IsCallerError reports whether err is something the caller can correct and retry.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicate) || errors.Is(err, ErrConflict)
}
