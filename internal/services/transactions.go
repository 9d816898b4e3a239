package services

import (
	"sort"

	"ticketbox-terminal/internal/models"
)

// TransactionService serves the read-only recent sales list
type TransactionService struct {
	transactions []models.Transaction
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactions []models.Transaction) *TransactionService {
	sorted := append([]models.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return &TransactionService{transactions: sorted}
}

// List returns a copy of every transaction, newest first
func (s *TransactionService) List() []models.Transaction {
	return append([]models.Transaction{}, s.transactions...)
}
