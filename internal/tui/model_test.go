package tui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

type recordingPrinter struct {
	printed []string
	err     error
}

func (p *recordingPrinter) Print(ctx context.Context, ticket models.IssuedTicket) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, ticket.TicketID)
	return nil
}

// blockingPrinter holds every job until its context ends.
type blockingPrinter struct {
	mu   sync.Mutex
	errs []error
}

func (p *blockingPrinter) Print(ctx context.Context, ticket models.IssuedTicket) error {
	<-ctx.Done()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs = append(p.errs, ctx.Err())
	return ctx.Err()
}

func (p *blockingPrinter) results() []error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]error(nil), p.errs...)
}

type fixture struct {
	clock    *clock.FakeClock
	catalog  *services.CatalogService
	payments *services.MockPaymentProvider
	printer  *recordingPrinter
}

func newFixture(delay time.Duration) fixture {
	clk := clock.Fake(time.Date(2025, 5, 4, 9, 30, 15, 0, time.UTC))
	return fixture{
		clock:    clk,
		catalog:  services.NewCatalogService(services.DefaultEvents(), clk, nil),
		payments: services.NewMockPaymentProvider(clk, delay, nil),
		printer:  &recordingPrinter{},
	}
}

func (f fixture) model(t *testing.T, options ...func(*Config)) Model {
	t.Helper()
	config := Config{
		Catalog:      f.catalog,
		Transactions: services.NewTransactionService(services.DefaultTransactions()),
		Payments:     f.payments,
		Encoder:      services.NewQREncoder(services.DefaultQRSize),
		Printer:      f.printer,
		Clock:        f.clock,
	}
	for _, option := range options {
		option(&config)
	}
	model := NewModel(config)
	model, _ = send(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
	return model
}

func send(t *testing.T, model Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	result, ok := updated.(Model)
	require.True(t, ok, "Update must return a Model")
	return result, command
}

func keyMsg(name string) tea.KeyMsg {
	switch name {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
	}
}

// press sends each key in turn and returns the command of the last one.
func press(t *testing.T, model Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var command tea.Cmd
	for _, name := range keys {
		model, command = send(t, model, keyMsg(name))
	}
	return model, command
}

func typeText(t *testing.T, model Model, text string) Model {
	t.Helper()
	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return model
}

// execute runs a command that does not block and flattens batches.
func execute(command tea.Cmd) []tea.Msg {
	if command == nil {
		return nil
	}
	message := command()
	if batch, ok := message.(tea.BatchMsg); ok {
		var messages []tea.Msg
		for _, inner := range batch {
			messages = append(messages, execute(inner)...)
		}
		return messages
	}
	return []tea.Msg{message}
}

// settle executes command and feeds every resulting message back in.
// Follow-up commands are returned, not run.
func settle(t *testing.T, model Model, command tea.Cmd) (Model, []tea.Cmd) {
	t.Helper()
	var followUps []tea.Cmd
	for _, message := range execute(command) {
		var next tea.Cmd
		model, next = send(t, model, message)
		if next != nil {
			followUps = append(followUps, next)
		}
	}
	return model, followUps
}

// fillCustomer types valid details into the checkout form.
func fillCustomer(t *testing.T, model Model) Model {
	t.Helper()
	model = typeText(t, model, "Jane Doe")
	model, _ = press(t, model, "tab")
	model = typeText(t, model, "jane@example.com")
	model, _ = press(t, model, "tab")
	return typeText(t, model, "0771234567")
}

// checkoutToSuccess buys two General Admission tickets by card.
func checkoutToSuccess(t *testing.T, f fixture, options ...func(*Config)) Model {
	t.Helper()
	model := f.model(t, options...)
	model, _ = press(t, model, "enter", "enter", "2")
	model = fillCustomer(t, model)
	model, command := press(t, model, "enter")
	require.Equal(t, services.StateProcessing, model.Session().State)

	model, _ = settle(t, model, command)
	require.Equal(t, services.StateSuccess, model.Session().State)
	return model
}

func TestAddTicketsToCart(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "enter", "j", "enter", "enter")

	lines := model.Cart().Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "General Admission", lines[0].Name)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "VIP Access", lines[1].Name)
	assert.Equal(t, 2, lines[1].Quantity)
	assert.Equal(t, "Zim Sables VS Zambia", lines[1].EventName)
	assert.Equal(t, int64(2500), model.Cart().Total())
}

func TestCatalogSearchAndCategory(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "/")
	assert.Equal(t, FocusSearch, model.Focus())
	model = typeText(t, model, "golf")
	model, _ = press(t, model, "enter")
	assert.Equal(t, FocusCatalog, model.Focus())
	require.Len(t, model.rows, 2)
	for _, row := range model.rows {
		assert.Equal(t, "3", row.event.ID)
	}

	model, _ = press(t, model, "esc")
	assert.Len(t, model.rows, 9)

	expected := []string{"Music", "Conference", "Food", "Entertainment", ""}
	for _, category := range expected {
		model, _ = press(t, model, "c")
		assert.Equal(t, category, model.category)
	}

	model, _ = press(t, model, "c", "c", "c", "c")
	require.Len(t, model.rows, 4)
	assert.Equal(t, "4", model.rows[0].event.ID)
}

func TestCartQuantityKeys(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "enter", "tab", "+", "+")
	assert.Equal(t, FocusCart, model.Focus())
	assert.Equal(t, 3, model.Cart().TicketCount())

	model, _ = press(t, model, "-")
	assert.Equal(t, 2, model.Cart().TicketCount())

	model, _ = press(t, model, "x")
	assert.True(t, model.Cart().IsEmpty())

	// Keys on an empty cart are harmless.
	model, _ = press(t, model, "+", "x")
	assert.True(t, model.Cart().IsEmpty())
}

func TestPaymentKeyIgnoredForEmptyCart(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "2")

	assert.Equal(t, FocusCatalog, model.Focus())
	assert.Equal(t, services.StateAwaitingPaymentSelection, model.Session().State)
	assert.Empty(t, model.status)
}

func TestCheckoutRequiresCustomerDetails(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "enter", "1")
	require.Equal(t, FocusCheckout, model.Focus())
	assert.Equal(t, models.PaymentCash, model.Session().Method)

	model, command := press(t, model, "enter")
	assert.Nil(t, command)
	assert.Equal(t, services.StateCollectingCustomerInfo, model.Session().State)
	assert.Equal(t, "name is required", model.customerForm.errors["name"])
	assert.Equal(t, "email is required", model.customerForm.errors["email"])
	assert.Equal(t, "phone number is required", model.customerForm.errors["phone"])
	assert.Contains(t, model.View(), "phone number is required")
}

func TestCheckoutPrintsEveryTicket(t *testing.T) {
	f := newFixture(0)
	model := checkoutToSuccess(t, f)
	assert.Contains(t, model.View(), "Payment successful")

	model, command := press(t, model, "p")
	require.Equal(t, FocusPreview, model.Focus())
	stamp := f.clock.Now().UnixMilli()
	first := "TIX-" + itoa(stamp) + "-1"
	assert.Equal(t, first, model.preview.ticketID)

	model, _ = settle(t, model, command)
	assert.NotEmpty(t, model.preview.code)
	assert.Contains(t, model.View(), "Ticket 1/2")

	model, command = press(t, model, "p")
	assert.True(t, model.preview.printing)
	model, followUps := settle(t, model, command)
	assert.Equal(t, "TIX-"+itoa(stamp)+"-2", model.preview.ticketID)
	require.Len(t, followUps, 1)

	model, command = press(t, model, "p")
	model, _ = settle(t, model, command)

	assert.Equal(t, []string{first, "TIX-" + itoa(stamp) + "-2"}, f.printer.printed)
	assert.Equal(t, FocusCatalog, model.Focus())
	assert.True(t, model.Cart().IsEmpty())
	assert.Equal(t, services.StateAwaitingPaymentSelection, model.Session().State)
	assert.Nil(t, model.run)
}

func TestPreviewSkipAndReopen(t *testing.T) {
	f := newFixture(0)
	model := checkoutToSuccess(t, f)

	model, _ = press(t, model, "p")
	seen := map[string]bool{}
	for _, ticket := range model.run.Tickets() {
		seen[ticket.TicketID] = true
	}
	model, _ = press(t, model, "s")
	assert.Equal(t, 2, model.run.Position())

	// Leaving the preview discards the run; reopening starts over with
	// new ids, even within the same millisecond.
	model, _ = press(t, model, "esc")
	assert.Equal(t, FocusCheckout, model.Focus())
	model, _ = press(t, model, "p")
	assert.Equal(t, 1, model.run.Position())
	for _, ticket := range model.run.Tickets() {
		assert.False(t, seen[ticket.TicketID], "ticket id %s reused", ticket.TicketID)
		seen[ticket.TicketID] = true
	}

	f.clock.Advance(3 * time.Second)
	model, _ = press(t, model, "esc", "p")
	reopened := model.run.Tickets()
	require.Len(t, reopened, 2)
	assert.Equal(t, "TIX-1746351018000-1", reopened[0].TicketID)
	for _, ticket := range reopened {
		assert.False(t, seen[ticket.TicketID], "ticket id %s reused", ticket.TicketID)
	}
	assert.Empty(t, f.printer.printed)
}

func TestPrintFailureKeepsTicket(t *testing.T) {
	f := newFixture(0)
	f.printer.err = errors.New("printer offline")
	model := checkoutToSuccess(t, f)

	model, _ = press(t, model, "p")
	model, command := press(t, model, "p")
	model, _ = settle(t, model, command)

	assert.False(t, model.preview.printing)
	require.Error(t, model.preview.printErr)
	assert.Equal(t, 1, model.run.Position())
	assert.Contains(t, model.View(), "Print failed: printer offline")
}

func TestEscCancelsPrintInFlight(t *testing.T) {
	f := newFixture(0)
	printer := &blockingPrinter{}
	model := checkoutToSuccess(t, f, func(c *Config) { c.Printer = printer })

	model, _ = press(t, model, "p")
	model, command := press(t, model, "p")
	require.True(t, model.preview.printing)
	require.NotNil(t, command)

	model, _ = press(t, model, "esc")
	assert.Equal(t, FocusPreview, model.Focus())
	assert.False(t, model.preview.printing)
	assert.ErrorIs(t, model.preview.printErr, context.Canceled)
	assert.Contains(t, model.View(), "Print cancelled")

	done := make(chan tea.Msg, 1)
	go func() { done <- command() }()
	select {
	case message := <-done:
		model, _ = send(t, model, message)
	case <-time.After(time.Second):
		t.Fatal("print job still running after cancel")
	}
	require.Len(t, printer.results(), 1)
	assert.ErrorIs(t, printer.results()[0], context.Canceled)
	assert.Equal(t, 1, model.run.Position())
	assert.ErrorIs(t, model.preview.printErr, context.Canceled)

	// A reprint of the same ticket ignores the cancelled job's result.
	model, _ = press(t, model, "p")
	require.True(t, model.preview.printing)
	current, err := model.run.Current()
	require.NoError(t, err)
	model, _ = send(t, model, ticketPrintedMsg{ticketID: current.TicketID, job: model.preview.job - 1})
	assert.True(t, model.preview.printing)
	assert.Equal(t, 1, model.run.Position())

	// Cancel, then leave the preview.
	model, _ = press(t, model, "esc", "esc")
	assert.Equal(t, FocusCheckout, model.Focus())
	assert.Nil(t, model.run)
	assert.Nil(t, model.cancelPrint)
}

func TestPrintJobTimesOut(t *testing.T) {
	f := newFixture(0)
	printer := &blockingPrinter{}
	model := checkoutToSuccess(t, f, func(c *Config) {
		c.Printer = printer
		c.PrintTimeout = 20 * time.Millisecond
	})

	model, _ = press(t, model, "p")
	model, command := press(t, model, "p")
	model, _ = settle(t, model, command)

	assert.False(t, model.preview.printing)
	require.Error(t, model.preview.printErr)
	assert.Equal(t, 1, model.run.Position())
	assert.Contains(t, model.View(), "Print failed: printer did not respond within 20ms")
	require.Len(t, printer.results(), 1)
	assert.ErrorIs(t, printer.results()[0], context.DeadlineExceeded)
}

func TestStaleCodeDropped(t *testing.T) {
	model := checkoutToSuccess(t, newFixture(0))
	model, _ = press(t, model, "p")

	model, _ = send(t, model, codeRenderedMsg{ticketID: "TIX-1-9", art: "stale"})
	assert.Empty(t, model.preview.code)

	model, _ = send(t, model, ticketPrintedMsg{ticketID: "TIX-1-9"})
	assert.Equal(t, 1, model.run.Position())
}

func TestDeclinedPaymentCanBeRetried(t *testing.T) {
	f := newFixture(0)
	f.payments.SetDecline(true)
	model := f.model(t)

	model, _ = press(t, model, "enter", "3")
	model = fillCustomer(t, model)
	model, command := press(t, model, "enter")
	model, _ = settle(t, model, command)

	require.Equal(t, services.StatePaymentFailed, model.Session().State)
	assert.Contains(t, model.Session().FailureReason, "declined")
	assert.Contains(t, model.View(), "Payment failed")

	model, _ = press(t, model, "r")
	require.Equal(t, services.StateCollectingCustomerInfo, model.Session().State)
	assert.Equal(t, "Jane Doe", model.customerForm.value("name"))

	f.payments.SetDecline(false)
	model, command = press(t, model, "enter")
	model, _ = settle(t, model, command)
	assert.Equal(t, services.StateSuccess, model.Session().State)
	assert.Equal(t, models.PaymentMobile, model.Session().Payment.Method)
}

func TestCancelDuringProcessingDropsLateCompletion(t *testing.T) {
	f := newFixture(services.DefaultPaymentDelay)
	model := f.model(t)

	model, _ = press(t, model, "enter", "2")
	model = fillCustomer(t, model)
	model, command := press(t, model, "enter")
	require.Equal(t, services.StateProcessing, model.Session().State)
	processingID := model.Session().ID

	model, _ = press(t, model, "esc")
	assert.Equal(t, services.StateAwaitingPaymentSelection, model.Session().State)
	assert.Equal(t, FocusCatalog, model.Focus())
	assert.Equal(t, 1, model.Cart().TicketCount())

	// The cancelled charge returns at once and is ignored.
	model, _ = settle(t, model, command)
	assert.Equal(t, services.StateAwaitingPaymentSelection, model.Session().State)

	late := services.PaymentCompletion{
		SessionID: processingID,
		Result:    &models.PaymentResult{Status: models.PaymentSucceeded},
	}
	model, _ = send(t, model, paymentCompletedMsg{completion: late})
	assert.Equal(t, services.StateAwaitingPaymentSelection, model.Session().State)
	assert.Equal(t, FocusCatalog, model.Focus())
}

func TestAddEventForm(t *testing.T) {
	f := newFixture(0)
	model := f.model(t)

	model, _ = press(t, model, "n")
	require.Equal(t, FocusEventForm, model.Focus())

	model, _ = press(t, model, "enter")
	assert.Equal(t, FocusEventForm, model.Focus())
	assert.Contains(t, model.eventForm.errors, "name")
	assert.Contains(t, model.eventForm.errors, "date")
	assert.Contains(t, model.eventForm.errors, "category")

	model = typeText(t, model, "Harare Jazz Night")
	model, _ = press(t, model, "tab")
	model = typeText(t, model, "2025-07-12")
	model, _ = press(t, model, "tab", "tab")
	model = typeText(t, model, "Jazz")
	model, _ = press(t, model, "tab", "tab", "tab")
	model = typeText(t, model, "Standing:15; Table:40.50")
	model, _ = press(t, model, "enter")

	assert.Equal(t, FocusCatalog, model.Focus())
	events := f.catalog.Filter("jazz night", "")
	require.Len(t, events, 1)
	assert.Equal(t, models.DefaultEventLocation, events[0].Location)
	require.Len(t, events[0].Tickets, 2)
	assert.Equal(t, int64(4050), events[0].Tickets[1].Price)
	assert.Len(t, model.rows, 11)
	assert.Contains(t, f.catalog.Categories(), "Jazz")
}

func TestParseTicketTypes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []models.TicketTypeDraft
		wantErr bool
	}{
		{name: "blank", input: "  "},
		{
			name:  "two entries",
			input: "General:5; Front Row: 12.50",
			want: []models.TicketTypeDraft{
				{Name: "General", Price: 500},
				{Name: "Front Row", Price: 1250},
			},
		},
		{
			name:  "colon in name",
			input: "Gate A: VIP:20",
			want:  []models.TicketTypeDraft{{Name: "Gate A: VIP", Price: 2000}},
		},
		{name: "missing price", input: "General", wantErr: true},
		{name: "bad price", input: "General:five", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTicketTypes(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionsOverlay(t *testing.T) {
	model := newFixture(0).model(t)

	model, _ = press(t, model, "t")
	require.Equal(t, FocusTransactions, model.Focus())
	require.Len(t, model.transactions.rows, 3)
	assert.Equal(t, "TX-002", model.transactions.rows[0].ID)

	view := model.View()
	assert.Contains(t, view, "Recent transactions")
	assert.Contains(t, view, "Jane Smith")
	assert.Contains(t, view, "refunded")

	model, _ = press(t, model, "j", "j", "j")
	assert.Equal(t, 2, model.transactions.scroll)
	model, _ = press(t, model, "k")
	assert.Equal(t, 1, model.transactions.scroll)

	// Keys do not reach the cart while the overlay is open.
	model, _ = press(t, model, "enter", "esc")
	assert.Equal(t, FocusCatalog, model.Focus())
	assert.True(t, model.Cart().IsEmpty())
}

func TestQuit(t *testing.T) {
	model := newFixture(0).model(t)

	_, command := press(t, model, "q")
	require.NotNil(t, command)
	assert.IsType(t, tea.QuitMsg{}, command())

	// q is text inside forms; ctrl+c always quits.
	model, _ = press(t, model, "enter", "1", "q")
	assert.Equal(t, "q", model.customerForm.value("name"))
	_, command = press(t, model, "ctrl+c")
	require.NotNil(t, command)
	assert.IsType(t, tea.QuitMsg{}, command())

	// ctrl+c also cancels a print job in flight.
	printer := &blockingPrinter{}
	model = checkoutToSuccess(t, newFixture(0), func(c *Config) { c.Printer = printer })
	model, printJob := press(t, model, "p", "p")
	_, command = press(t, model, "ctrl+c")
	assert.IsType(t, tea.QuitMsg{}, command())
	printJob()
	assert.ErrorIs(t, printer.results()[0], context.Canceled)
}

func TestViewLayout(t *testing.T) {
	model := NewModel(Config{
		Catalog:  services.NewCatalogService(services.DefaultEvents(), nil, nil),
		Payments: services.NewMockPaymentProvider(nil, 0, nil),
	})
	assert.Equal(t, "Loading...", model.View())

	model, _ = send(t, model, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := model.View()
	assert.Contains(t, view, "Ticketbox Ticket Terminal")
	assert.Contains(t, view, "Zim Sables VS Zambia")
	assert.Contains(t, view, "Cart (0 tickets)")
	assert.LessOrEqual(t, len(strings.Split(view, "\n")), 30)
}

func TestScrollWindow(t *testing.T) {
	lines := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, []string{"a", "b", "c"}, scrollWindow(lines, 1, 3))
	assert.Equal(t, []string{"c", "d", "e"}, scrollWindow(lines, 4, 3))
	assert.Equal(t, lines, scrollWindow(lines, 4, 10))
	assert.Equal(t, 0, clamp(5, 0))
	assert.Equal(t, 2, clamp(7, 3))
}

func itoa(value int64) string {
	return strconv.FormatInt(value, 10)
}
