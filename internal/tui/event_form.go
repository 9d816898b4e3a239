package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/models"
)

func (model Model) handleEventFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		model.eventForm.blur()
		model.focusRegion = FocusCatalog
		return model, nil
	case key.Matches(message, model.keys.NextField):
		return model, model.eventForm.next()
	case key.Matches(message, model.keys.PrevField):
		return model, model.eventForm.previous()
	case key.Matches(message, model.keys.Submit):
		return model.submitEvent()
	}
	return model, model.eventForm.update(message)
}

func (model Model) submitEvent() (tea.Model, tea.Cmd) {
	tickets, err := parseTicketTypes(model.eventForm.value("tickets"))
	if err != nil {
		model.eventForm.errors = map[string]string{"tickets": err.Error()}
		return model, nil
	}

	draft := models.EventDraft{
		Name:     model.eventForm.value("name"),
		Date:     model.eventForm.value("date"),
		Time:     model.eventForm.value("time"),
		Category: model.eventForm.value("category"),
		Location: model.eventForm.value("location"),
		ImageRef: model.eventForm.value("image_ref"),
		Tickets:  tickets,
	}

	event, err := model.config.Catalog.AddEvent(draft)
	if err != nil {
		if !model.eventForm.setErrors(err) {
			model.logger.Error("add event failed", zap.Error(err))
			model.setError(err.Error())
		}
		return model, nil
	}

	model.eventForm.blur()
	model.focusRegion = FocusCatalog
	model.refreshCatalog()
	model.setStatus(fmt.Sprintf("Added event %s", event.Name))
	return model, nil
}

// parseTicketTypes reads "Name:price" entries separated by semicolons,
// e.g. "General:5.00; VIP:10". Blank input yields no ticket types.
func parseTicketTypes(value string) ([]models.TicketTypeDraft, error) {
	var tickets []models.TicketTypeDraft
	for _, entry := range strings.Split(value, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		separator := strings.LastIndex(entry, ":")
		if separator < 0 {
			return nil, fmt.Errorf("%q needs a price, e.g. %s:5.00", entry, entry)
		}

		price, err := models.ParseMoney(entry[separator+1:])
		if err != nil {
			return nil, fmt.Errorf("%q has an invalid price", entry)
		}

		tickets = append(tickets, models.TicketTypeDraft{
			Name:  strings.TrimSpace(entry[:separator]),
			Price: price,
		})
	}
	return tickets, nil
}
