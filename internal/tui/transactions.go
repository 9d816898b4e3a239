package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"ticketbox-terminal/internal/models"
)

// transactionsView is the recent sales overlay.
type transactionsView struct {
	rows   []models.Transaction
	scroll int
}

func (model *Model) openTransactions() {
	model.transactions = transactionsView{}
	if model.config.Transactions != nil {
		model.transactions.rows = model.config.Transactions.List()
	}
}

func (model Model) handleTransactionsKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back), key.Matches(message, model.keys.Transactions):
		model.focusRegion = FocusCatalog

	case key.Matches(message, model.keys.Up):
		if model.transactions.scroll > 0 {
			model.transactions.scroll--
		}

	case key.Matches(message, model.keys.Down):
		if model.transactions.scroll < len(model.transactions.rows)-1 {
			model.transactions.scroll++
		}
	}
	return model, nil
}
