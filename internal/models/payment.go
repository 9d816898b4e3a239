package models

import (
	"fmt"
	"strings"
	"time"
)

// PaymentMethod represents a payment option offered by the terminal
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentMobile PaymentMethod = "Mobile"
	PaymentCoupon PaymentMethod = "Coupon"
)

// PaymentMethods lists the payment options in the order they are offered
var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentMobile, PaymentCoupon}

// ParsePaymentMethod matches a method name case-insensitively
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, method := range PaymentMethods {
		if strings.EqualFold(string(method), strings.TrimSpace(value)) {
			return method, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, value)
}

// IsValid reports whether the method is one of the offered options
func (m PaymentMethod) IsValid() bool {
	_, err := ParsePaymentMethod(string(m))
	return err == nil
}

// PaymentStatus is the outcome reported by a payment provider
type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "success"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentResult represents the result of a payment processing attempt
type PaymentResult struct {
	PaymentID     string        `json:"payment_id"`
	Status        PaymentStatus `json:"status"`
	Amount        int64         `json:"amount"` // Amount in cents
	Method        PaymentMethod `json:"method"`
	TransactionID string        `json:"transaction_id"`
	ProcessedAt   time.Time     `json:"processed_at"`
	ErrorMessage  string        `json:"error_message,omitempty"`
}

// Succeeded reports whether the payment went through
func (r *PaymentResult) Succeeded() bool {
	return r != nil && r.Status == PaymentSucceeded
}
