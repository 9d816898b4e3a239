package models

import (
	"errors"
	"fmt"
	"strings"
)

// SeatLabelFormat formats the per-line seat sequence of an issued ticket
const SeatLabelFormat = "SEAT-%03d"

// TicketType represents a type of ticket for an event
type TicketType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"` // Price in cents
	Description string `json:"description"`
}

// TicketTypeDraft represents a ticket type supplied with a new event
type TicketTypeDraft struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"` // Price in cents
	Description string `json:"description"`
}

// IssuedTicket represents one printable unit of an issuance run. It is derived
// from a cart snapshot and never stored.
type IssuedTicket struct {
	EventName      string `json:"event_name"`
	TicketTypeName string `json:"ticket_type_name"`
	CustomerName   string `json:"customer_name"`
	TicketID       string `json:"ticket_id"`
	IssueDate      string `json:"issue_date"`
	IssueTime      string `json:"issue_time"`
	Location       string `json:"location"`
	SeatLabel      string `json:"seat_label"`
	Position       int    `json:"position"`
	Total          int    `json:"total"`
}

// Validate validates the ticket type data
func (tt *TicketType) Validate() error {
	if err := validateTicketTypeName(tt.Name); err != "" {
		return errors.New(err)
	}

	if err := validateTicketTypePrice(tt.Price); err != "" {
		return errors.New(err)
	}

	return nil
}

// PriceInCurrency returns the price in the main currency as a float, for display only
func (tt *TicketType) PriceInCurrency() float64 {
	return float64(tt.Price) / 100.0
}

func (d *TicketTypeDraft) validate() string {
	if err := validateTicketTypeName(d.Name); err != "" {
		return err
	}
	return validateTicketTypePrice(d.Price)
}

// Number renders the run position as shown on the ticket, e.g. "2/5"
func (t *IssuedTicket) Number() string {
	return fmt.Sprintf("%d/%d", t.Position, t.Total)
}

// IsLast reports whether this is the final ticket of its run
func (t *IssuedTicket) IsLast() bool {
	return t.Position == t.Total
}

// SeatLabel formats the seat label for the n-th unit (1-based) of a cart line
func SeatLabel(n int) string {
	return fmt.Sprintf(SeatLabelFormat, n)
}

// validateTicketTypeName validates a ticket type name
func validateTicketTypeName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "ticket type name is required"
	}

	if len(name) > 100 {
		return "ticket type name must be less than 100 characters"
	}

	return ""
}

// validateTicketTypePrice validates a ticket type price
func validateTicketTypePrice(price int64) string {
	if price < 0 {
		return "ticket price cannot be negative"
	}

	return ""
}
