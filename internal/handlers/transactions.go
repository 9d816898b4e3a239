package handlers

import (
	"net/http"

	"ticketbox-terminal/internal/services"
)

// TransactionHandler serves the read-only recent sales list
type TransactionHandler struct {
	transactions services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// ListTransactions returns every transaction, newest first
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.transactions.List())
}
