package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"ticketbox-terminal/internal/services"
)

// chromeHeight is the number of rows outside the two panes: header,
// filter bar, separator, status line and help bar.
const chromeHeight = 5

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	bodyHeight := max(model.height-chromeHeight, 3)
	catalogWidth := model.width * 3 / 5
	cartWidth := max(model.width-catalogWidth-1, 10)

	divider := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.TrimSuffix(strings.Repeat("│\n", bodyHeight), "\n"))

	sections := []string{
		model.renderHeader(),
		model.renderFilterBar(),
		lipgloss.JoinHorizontal(lipgloss.Top,
			model.renderCatalogPane(catalogWidth, bodyHeight),
			divider,
			model.renderCartPane(cartWidth, bodyHeight),
		),
		lipgloss.NewStyle().Foreground(model.theme.BorderColor).Render(strings.Repeat("─", model.width)),
		model.renderStatus(),
		model.help.View(model.keys),
	}
	output := strings.Join(sections, "\n")

	if box := model.renderModal(); box != "" {
		output = centerOverlay(output, box, model.width, model.height)
	}
	return output
}

func (model Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Background(model.theme.Accent).
		Padding(0, 1).
		Render("Ticketbox Ticket Terminal")
	clock := lipgloss.NewStyle().
		Foreground(model.theme.FaintText).
		Render(model.config.Clock.Now().Format("Mon 2 Jan 2006 15:04"))

	gap := max(model.width-lipgloss.Width(title)-lipgloss.Width(clock), 1)
	return title + strings.Repeat(" ", gap) + clock
}

func (model Model) renderFilterBar() string {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	category := model.category
	if category == "" {
		category = "All"
	}

	search := model.search.View()
	if model.focusRegion != FocusSearch && model.search.Value() == "" {
		search = faint.Render("/ search")
	}
	return search + faint.Render("   category: ") + category
}

func (model Model) renderCatalogPane(width, height int) string {
	eventStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.Accent)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Width(width)

	if len(model.rows) == 0 {
		return lipgloss.NewStyle().Width(width).Height(height).
			Render(faint.Render("No events match"))
	}

	var lines []string
	selectedLine := 0
	lastEvent := ""
	for i, row := range model.rows {
		if row.event.ID != lastEvent {
			lastEvent = row.event.ID
			header := eventStyle.Render(row.event.Name) +
				faint.Render(fmt.Sprintf("  %s %s  %s", row.event.Date, row.event.Time, row.event.Location))
			lines = append(lines, ansi.Truncate(header, width, "…"))
		}

		price := model.money(row.ticket.Price)
		name := ansi.Truncate("  "+row.ticket.Name, max(width-len(price)-1, 1), "…")
		line := name + strings.Repeat(" ", max(width-ansi.StringWidth(name)-len(price), 1)) + price
		if i == model.catalogCursor {
			selectedLine = len(lines)
			if model.focusRegion == FocusCatalog {
				line = selected.Render(line)
			} else {
				line = "▸" + strings.TrimPrefix(line, " ")
			}
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().Width(width).Height(height).
		Render(strings.Join(scrollWindow(lines, selectedLine, height), "\n"))
}

func (model Model) renderCartPane(width, height int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(model.theme.HeaderForeground)
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	selected := lipgloss.NewStyle().
		Background(model.theme.SelectedBackground).
		Foreground(model.theme.SelectedForeground).
		Width(width - 1)

	lines := []string{titleStyle.Render(fmt.Sprintf(" Cart (%d tickets)", model.cart.TicketCount()))}

	cartLines := model.cart.Lines()
	if len(cartLines) == 0 {
		lines = append(lines, faint.Render(" Select tickets to add them here"))
	}
	for i, line := range cartLines {
		subtotal := model.money(line.Subtotal())
		label := ansi.Truncate(fmt.Sprintf(" %s x%d", line.Name, line.Quantity), max(width-len(subtotal)-2, 1), "…")
		row := label + strings.Repeat(" ", max(width-1-ansi.StringWidth(label)-len(subtotal), 1)) + subtotal
		if i == model.cartCursor && model.focusRegion == FocusCart {
			row = selected.Render(row)
		}
		lines = append(lines, row, faint.Render(ansi.Truncate("   "+line.EventName, width-1, "…")))
	}

	total := model.money(model.cart.Total())
	lines = append(lines, "",
		titleStyle.Render(" Total")+strings.Repeat(" ", max(width-7-len(total), 1))+titleStyle.Render(total),
		"",
		faint.Render(" Pay: "+model.help.ShortHelpView(model.keys.paymentMethodKeys())),
	)

	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).
		Render(strings.Join(lines, "\n"))
}

func (model Model) renderStatus() string {
	if model.status == "" {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(model.theme.Success)
	if model.statusIsError {
		style = style.Foreground(model.theme.Error)
	}
	return style.Render(model.status)
}

// renderModal returns the boxed content for the active overlay, or
// the empty string when none is open.
func (model Model) renderModal() string {
	var title, body string
	var bindings []key.Binding

	switch model.focusRegion {
	case FocusCheckout:
		title, body, bindings = model.renderCheckout()
	case FocusPreview:
		title, body, bindings = model.renderPreview()
	case FocusEventForm:
		title = "New event"
		body = model.eventForm.view(model.theme)
		bindings = []key.Binding{model.keys.Submit, model.keys.NextField, model.keys.Back}
	case FocusTransactions:
		title, body = model.renderTransactions()
		bindings = []key.Binding{model.keys.Up, model.keys.Down, model.keys.Back}
	default:
		return ""
	}

	titleColor := model.theme.Accent
	if model.focusRegion == FocusCheckout {
		titleColor = model.theme.CheckoutStateColor(model.session.State)
	}
	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(titleColor).Render(title),
		"",
		body,
		"",
		model.help.ShortHelpView(bindings),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(1, 2).
		MaxWidth(max(model.width, 20)).
		Render(content)
}

func (model Model) renderCheckout() (string, string, []key.Binding) {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	session := model.session
	title := fmt.Sprintf("Checkout: %s", session.Method)

	switch session.State {
	case services.StateCollectingCustomerInfo:
		summary := fmt.Sprintf("%d ticket(s), total %s", model.cart.TicketCount(), model.money(model.cart.Total()))
		body := faint.Render(summary) + "\n\n" + model.customerForm.view(model.theme)
		return title, body, []key.Binding{model.keys.Submit, model.keys.NextField, model.keys.Back}

	case services.StateProcessing:
		body := fmt.Sprintf("%s Processing %s payment of %s...",
			model.spinner.View(), session.Method, model.money(session.Snapshot.Total))
		return title, body, []key.Binding{model.keys.Back}

	case services.StatePaymentFailed:
		body := lipgloss.NewStyle().Foreground(model.theme.Error).Render(session.FailureReason)
		return "Payment failed", body, []key.Binding{model.keys.Retry, model.keys.Back}

	case services.StateSuccess:
		body := strings.Join([]string{
			fmt.Sprintf("Amount        %s", model.money(session.Payment.Amount)),
			fmt.Sprintf("Payment       %s", session.Payment.PaymentID),
			fmt.Sprintf("Transaction   %s", session.Payment.TransactionID),
			fmt.Sprintf("Customer      %s", session.Customer.Name),
			"",
			faint.Render(fmt.Sprintf("%d ticket(s) ready to print", session.Snapshot.TicketCount)),
		}, "\n")
		return "Payment successful", body, []key.Binding{model.keys.Print, model.keys.Back}
	}

	return title, "", nil
}

func (model Model) renderPreview() (string, string, []key.Binding) {
	bindings := []key.Binding{model.keys.Print, model.keys.Skip, model.keys.Back}
	ticket, err := model.run.Current()
	if err != nil {
		return "Tickets", "All tickets printed", bindings
	}

	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	band := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground).
		Background(model.theme.Accent).
		Padding(0, 1).
		Render(ticket.EventName)

	details := strings.Join([]string{
		band,
		"",
		faint.Render("Ticket   ") + ticket.TicketTypeName,
		faint.Render("Name     ") + ticket.CustomerName,
		faint.Render("Date     ") + ticket.IssueDate,
		faint.Render("Time     ") + ticket.IssueTime,
		faint.Render("Venue    ") + ticket.Location,
		faint.Render("Seat     ") + ticket.SeatLabel,
		"",
		faint.Render(ticket.TicketID),
	}, "\n")

	var code string
	switch {
	case model.preview.codeErr != nil:
		code = lipgloss.NewStyle().Foreground(model.theme.Error).Render("code unavailable")
	case model.preview.code != "":
		code = model.preview.code
	case model.config.Encoder != nil:
		code = faint.Render("rendering code...")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, details, "   ", code)
	switch {
	case model.preview.printing:
		body += "\n\n" + lipgloss.NewStyle().Foreground(model.theme.Warning).Render("Printing... (esc to cancel)")
	case errors.Is(model.preview.printErr, context.Canceled):
		body += "\n\n" + lipgloss.NewStyle().Foreground(model.theme.Warning).Render("Print cancelled")
	case model.preview.printErr != nil:
		body += "\n\n" + lipgloss.NewStyle().Foreground(model.theme.Error).
			Render("Print failed: "+model.preview.printErr.Error())
	}

	return fmt.Sprintf("Ticket %s", ticket.Number()), body, bindings
}

func (model Model) renderTransactions() (string, string) {
	faint := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	var lines []string
	if len(model.transactions.rows) == 0 {
		lines = append(lines, faint.Render("No transactions yet"))
	}

	visible := max((model.height-12)/2, 1)
	end := min(model.transactions.scroll+visible, len(model.transactions.rows))
	for _, tx := range model.transactions.rows[model.transactions.scroll:end] {
		statusStyle := lipgloss.NewStyle().Foreground(model.theme.TransactionStatusColor(tx.Status))
		lines = append(lines, fmt.Sprintf("%-7s %s  %-22s %10s  %s",
			tx.ID,
			tx.Date.Format("2006-01-02 15:04"),
			ansi.Truncate(tx.CustomerName, 22, "…"),
			model.money(tx.Amount),
			statusStyle.Render(string(tx.Status)),
		))
		lines = append(lines, faint.Render(fmt.Sprintf("        %s, %d ticket(s), %s", tx.EventName, tx.TicketCount, tx.PaymentMethod)))
	}

	return "Recent transactions", strings.Join(lines, "\n")
}

// scrollWindow returns at most height lines keeping the selected line
// visible.
func scrollWindow(lines []string, selected, height int) []string {
	if len(lines) <= height {
		return lines
	}
	start := 0
	if selected >= height {
		start = selected - height + 1
	}
	return lines[start:min(start+height, len(lines))]
}
