package models

import "time"

// TransactionStatus represents the state of a recorded sale
type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionRefunded  TransactionStatus = "refunded"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is read-only reference data shown in the recent sales list.
// The terminal never produces these records.
type Transaction struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	EventName     string            `json:"event_name"`
	Amount        int64             `json:"amount"` // in cents
	Status        TransactionStatus `json:"status"`
	CustomerName  string            `json:"customer_name"`
	PaymentMethod PaymentMethod     `json:"payment_method"`
	TicketCount   int               `json:"ticket_count"`
}
