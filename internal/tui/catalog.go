package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

// catalogRow is one selectable ticket type with its event.
type catalogRow struct {
	event  models.Event
	ticket models.TicketType
}

// refreshCatalog rebuilds the ticket rows from the current search
// term and category and clamps the cursor.
func (model *Model) refreshCatalog() {
	events := model.config.Catalog.Filter(model.search.Value(), model.category)

	rows := make([]catalogRow, 0, len(events))
	for _, event := range events {
		for _, ticket := range event.Tickets {
			rows = append(rows, catalogRow{event: event, ticket: ticket})
		}
	}
	model.rows = rows
	model.catalogCursor = clamp(model.catalogCursor, len(model.rows))
}

// nextCategory advances the category filter through the catalog's
// categories, returning to "all" after the last one.
func (model *Model) nextCategory() {
	categories := model.config.Catalog.Categories()
	next := ""
	if model.category == "" {
		if len(categories) > 0 {
			next = categories[0]
		}
	} else {
		for i, category := range categories {
			if category == model.category && i+1 < len(categories) {
				next = categories[i+1]
			}
		}
	}
	model.category = next
	model.catalogCursor = 0
	model.refreshCatalog()
}

func (model Model) handleMainKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	for i, binding := range model.keys.paymentMethodKeys() {
		if key.Matches(message, binding) {
			return model.openCheckout(models.PaymentMethods[i])
		}
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focusRegion == FocusCatalog {
			model.focusRegion = FocusCart
		} else {
			model.focusRegion = FocusCatalog
		}

	case key.Matches(message, model.keys.Search):
		model.focusRegion = FocusSearch
		return model, model.search.Focus()

	case key.Matches(message, model.keys.NextCategory):
		model.nextCategory()

	case key.Matches(message, model.keys.ClearFilters):
		model.search.Reset()
		model.category = ""
		model.refreshCatalog()

	case key.Matches(message, model.keys.NewEvent):
		model.focusRegion = FocusEventForm
		return model, model.eventForm.reset()

	case key.Matches(message, model.keys.Transactions):
		model.focusRegion = FocusTransactions
		model.openTransactions()

	case model.focusRegion == FocusCart:
		return model.handleCartKeys(message)

	default:
		return model.handleCatalogKeys(message)
	}

	return model, nil
}

func (model Model) handleCatalogKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.catalogCursor > 0 {
			model.catalogCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.catalogCursor < len(model.rows)-1 {
			model.catalogCursor++
		}

	case key.Matches(message, model.keys.AddToCart):
		if len(model.rows) == 0 {
			return model, nil
		}
		row := model.rows[model.catalogCursor]
		model.cart.AddTicket(row.ticket, &row.event)
		model.setStatus(fmt.Sprintf("Added %s for %s", row.ticket.Name, row.event.Name))
	}

	return model, nil
}

func (model Model) handleCartKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := model.cart.Lines()
	if len(lines) == 0 {
		return model, nil
	}
	model.cartCursor = clamp(model.cartCursor, len(lines))
	line := lines[model.cartCursor]

	switch {
	case key.Matches(message, model.keys.Up):
		if model.cartCursor > 0 {
			model.cartCursor--
		}

	case key.Matches(message, model.keys.Down):
		if model.cartCursor < len(lines)-1 {
			model.cartCursor++
		}

	case key.Matches(message, model.keys.Increase):
		model.cart.SetQuantity(line.TicketTypeID, line.Quantity+1)

	case key.Matches(message, model.keys.Decrease):
		model.cart.SetQuantity(line.TicketTypeID, line.Quantity-1)

	case key.Matches(message, model.keys.Remove):
		model.cart.Remove(line.TicketTypeID)
		model.setStatus(fmt.Sprintf("Removed %s", line.Name))
	}

	model.cartCursor = clamp(model.cartCursor, model.cart.Len())
	return model, nil
}

func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.Type {
	case tea.KeyEsc:
		model.search.Reset()
		model.search.Blur()
		model.focusRegion = FocusCatalog
		model.refreshCatalog()
		return model, nil

	case tea.KeyEnter:
		model.search.Blur()
		model.focusRegion = FocusCatalog
		return model, nil
	}

	var command tea.Cmd
	model.search, command = model.search.Update(message)
	model.catalogCursor = 0
	model.refreshCatalog()
	return model, command
}

// openCheckout starts a checkout for the chosen payment method. An
// empty cart leaves the terminal exactly where it was.
func (model Model) openCheckout(method models.PaymentMethod) (tea.Model, tea.Cmd) {
	session, err := services.SelectPaymentMethod(model.session, model.cart, method)
	if err != nil {
		if errors.Is(err, models.ErrEmptyCart) {
			model.logger.Debug("payment method ignored for empty cart", zap.String("method", string(method)))
			return model, nil
		}
		model.logger.Warn("open checkout failed", zap.Error(err))
		model.setError(err.Error())
		return model, nil
	}

	model.session = session
	model.focusRegion = FocusCheckout
	model.setStatus("")
	return model, model.customerForm.reset()
}

// clamp keeps a cursor inside [0, length).
func clamp(cursor, length int) int {
	if cursor >= length {
		cursor = length - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
