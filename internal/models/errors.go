package models

import (
	"errors"
	"strings"
)

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrTicketTypeNotFound = errors.New("ticket type not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrStaleCompletion    = errors.New("completion belongs to a closed session")
	ErrInvalidTransition  = errors.New("invalid checkout transition")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrRunFinished        = errors.New("print run already finished")
	ErrInvalidInput       = errors.New("invalid input")
)

// ValidationError describes a single missing or malformed form field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ValidationErrors collects every field failure of one form submission
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, e := range v {
		messages = append(messages, e.Error())
	}
	return strings.Join(messages, "; ")
}

func (v ValidationErrors) Unwrap() error {
	return ErrInvalidInput
}

// Message returns the message recorded for field, or "" when the field passed.
func (v ValidationErrors) Message(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// add appends a failure for field
func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, &ValidationError{Field: field, Message: message})
}

// errOrNil returns nil for an empty collection so callers can `return errs.errOrNil()`.
func (v ValidationErrors) errOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
