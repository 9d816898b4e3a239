package services

import (
	"context"

	"ticketbox-terminal/internal/models"
)

// CatalogServiceInterface defines the catalog operations shared by the terminal UI and the collaborator API
type CatalogServiceInterface interface {
	Events() []models.Event
	GetEvent(id string) (*models.Event, error)
	FindTicketType(ticketTypeID string) (models.TicketType, *models.Event, error)
	AddEvent(draft models.EventDraft) (*models.Event, error)
	Filter(searchTerm, category string) []models.Event
	Categories() []string
}

// PaymentProvider is the boundary to whatever takes the customer's money.
// The terminal ships a timed mock; a gateway client can replace it.
type PaymentProvider interface {
	Charge(ctx context.Context, amount int64, method models.PaymentMethod) (*models.PaymentResult, error)
}

// TransactionServiceInterface defines the read-only recent sales source
type TransactionServiceInterface interface {
	List() []models.Transaction
}

// CodeEncoder turns a ticket id into a scannable code
type CodeEncoder interface {
	// Encode returns a PNG image of the code.
	Encode(payload string) ([]byte, error)
	// Terminal returns a block-character rendering for display in a terminal.
	Terminal(payload string) (string, error)
}

// Spooler hands a rendered ticket to a print target
type Spooler interface {
	Spool(ctx context.Context, name string, document []byte) error
}
