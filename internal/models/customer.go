package models

import "strings"

// CustomerInfo represents the contact details captured once per checkout
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate checks that every field is present. Formats are not checked.
func (c *CustomerInfo) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Name) == "" {
		errs.add("name", "name is required")
	}

	if strings.TrimSpace(c.Email) == "" {
		errs.add("email", "email is required")
	}

	if strings.TrimSpace(c.Phone) == "" {
		errs.add("phone", "phone number is required")
	}

	return errs.errOrNil()
}

// Trimmed returns a copy with surrounding whitespace removed from each field
func (c CustomerInfo) Trimmed() CustomerInfo {
	return CustomerInfo{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
}
