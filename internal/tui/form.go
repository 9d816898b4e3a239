package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ticketbox-terminal/internal/models"
)

// formField is one labelled input. key matches the field name used
// by models.ValidationError so messages land under the right input.
type formField struct {
	key   string
	label string
	input textinput.Model
}

// formFields is a vertical stack of inputs with one focused at a
// time and per-field error messages.
type formFields struct {
	fields []formField
	focus  int
	errors map[string]string
}

func newFormField(key, label, placeholder string, limit int) formField {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 40
	return formField{key: key, label: label, input: input}
}

func newCustomerForm() formFields {
	return formFields{fields: []formField{
		newFormField("name", "Full name", "Jane Doe", 100),
		newFormField("email", "Email", "jane@example.com", 254),
		newFormField("phone", "Phone", "+263 77 123 4567", 32),
	}}
}

func newEventForm() formFields {
	return formFields{fields: []formField{
		newFormField("name", "Event name", "Harare Jazz Night", 255),
		newFormField("date", "Date", models.DateLayout, 10),
		newFormField("time", "Time", models.TimeLayout+" (default "+models.DefaultEventTime+")", 5),
		newFormField("category", "Category", "Music", 50),
		newFormField("location", "Location", models.DefaultEventLocation, 120),
		newFormField("image_ref", "Image", "https://...", 500),
		newFormField("tickets", "Tickets", "General:5.00; VIP:10", 500),
	}}
}

// reset clears every value and error and focuses the first input.
func (form *formFields) reset() tea.Cmd {
	for i := range form.fields {
		form.fields[i].input.Reset()
	}
	form.errors = nil
	return form.focusField(0)
}

func (form *formFields) focusField(index int) tea.Cmd {
	if len(form.fields) == 0 {
		return nil
	}
	index = (index + len(form.fields)) % len(form.fields)
	for i := range form.fields {
		form.fields[i].input.Blur()
	}
	form.focus = index
	return form.fields[index].input.Focus()
}

func (form *formFields) next() tea.Cmd {
	return form.focusField(form.focus + 1)
}

func (form *formFields) previous() tea.Cmd {
	return form.focusField(form.focus - 1)
}

func (form *formFields) blur() {
	for i := range form.fields {
		form.fields[i].input.Blur()
	}
}

// update passes a message to the focused input.
func (form *formFields) update(message tea.Msg) tea.Cmd {
	if len(form.fields) == 0 {
		return nil
	}
	var command tea.Cmd
	form.fields[form.focus].input, command = form.fields[form.focus].input.Update(message)
	return command
}

func (form formFields) value(key string) string {
	for _, field := range form.fields {
		if field.key == key {
			return field.input.Value()
		}
	}
	return ""
}

func (form *formFields) setValue(key, value string) {
	for i := range form.fields {
		if form.fields[i].key == key {
			form.fields[i].input.SetValue(value)
		}
	}
}

// setErrors records validation messages by field. It reports whether
// err carried any; other errors are left to the caller.
func (form *formFields) setErrors(err error) bool {
	var validationErrs models.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return false
	}
	form.errors = make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		if _, seen := form.errors[e.Field]; !seen {
			form.errors[e.Field] = e.Message
		}
	}
	return true
}

func (form formFields) view(theme Theme) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(12)
	focusedLabel := labelStyle.Foreground(theme.Accent).Bold(true)
	errorStyle := lipgloss.NewStyle().Foreground(theme.Error).PaddingLeft(12)

	var lines []string
	for i, field := range form.fields {
		label := labelStyle
		if i == form.focus {
			label = focusedLabel
		}
		lines = append(lines, label.Render(field.label)+field.input.View())
		if message := form.errors[field.key]; message != "" {
			lines = append(lines, errorStyle.Render(message))
		}
	}
	return strings.Join(lines, "\n")
}
