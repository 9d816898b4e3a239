package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

// FocusRegion identifies which part of the terminal receives
// keyboard input.
type FocusRegion int

const (
	// FocusCatalog routes keys to the ticket list.
	FocusCatalog FocusRegion = iota

	// FocusCart routes keys to the cart lines.
	FocusCart

	// FocusSearch routes keys to the catalog search input.
	FocusSearch

	// FocusCheckout routes keys to the checkout modal.
	FocusCheckout

	// FocusPreview routes keys to the ticket preview modal.
	FocusPreview

	// FocusEventForm routes keys to the new event form.
	FocusEventForm

	// FocusTransactions routes keys to the recent sales overlay.
	FocusTransactions
)

// DefaultPrintTimeout bounds one print job when Config leaves it unset.
const DefaultPrintTimeout = 30 * time.Second

// TicketPrinter produces a physical ticket for one issued ticket.
type TicketPrinter interface {
	Print(ctx context.Context, ticket models.IssuedTicket) error
}

// Config wires the services the terminal drives. Catalog, Payments
// and Clock are required; a nil Encoder hides codes in the preview and
// a nil Printer makes printing a no-op that only advances the run.
type Config struct {
	Catalog        services.CatalogServiceInterface
	Transactions   services.TransactionServiceInterface
	Payments       services.PaymentProvider
	Encoder        services.CodeEncoder
	Printer        TicketPrinter
	PrintTimeout   time.Duration
	Clock          clock.Clock
	Logger         *zap.Logger
	CurrencySymbol string
}

// paymentCompletedMsg carries the outcome of an asynchronous charge.
type paymentCompletedMsg struct {
	completion services.PaymentCompletion
}

// codeRenderedMsg carries the terminal rendering of a ticket code.
type codeRenderedMsg struct {
	ticketID string
	art      string
	err      error
}

// ticketPrintedMsg reports the end of one print job. job tells a
// cancelled job's late result apart from a reprint of the same ticket.
type ticketPrintedMsg struct {
	ticketID string
	job      int
	err      error
}

// Model is the top-level bubbletea model for the point-of-sale
// terminal: a catalog pane and a cart pane, with modal overlays for
// checkout, ticket preview, event entry and recent transactions.
type Model struct {
	config  Config
	logger  *zap.Logger
	keys    KeyMap
	theme   Theme
	help    help.Model
	spinner spinner.Model

	width  int
	height int
	ready  bool

	focusRegion FocusRegion

	// Catalog pane.
	search        textinput.Model
	category      string
	rows          []catalogRow
	catalogCursor int

	// Cart pane.
	cart       *models.Cart
	cartCursor int

	// Checkout. cancelCharge is set while a charge is in flight.
	session      services.CheckoutSession
	customerForm formFields
	cancelCharge context.CancelFunc

	// Ticket preview for the active print run. cancelPrint is set
	// while a print job is in flight.
	stamper     *services.IssueStamper
	run         *services.PrintRun
	preview     previewState
	printJobs   int
	cancelPrint context.CancelFunc

	eventForm    formFields
	transactions transactionsView

	status        string
	statusIsError bool
}

// NewModel creates a terminal model with an empty cart.
func NewModel(config Config) Model {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Clock == nil {
		config.Clock = clock.Real()
	}
	if config.CurrencySymbol == "" {
		config.CurrencySymbol = models.DefaultCurrencySymbol
	}
	if config.PrintTimeout <= 0 {
		config.PrintTimeout = DefaultPrintTimeout
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search events"
	search.CharLimit = 64

	model := Model{
		config:       config,
		logger:       logger,
		keys:         DefaultKeyMap,
		theme:        DefaultTheme,
		help:         help.New(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		focusRegion:  FocusCatalog,
		search:       search,
		cart:         models.NewCart(),
		session:      services.NewCheckoutSession(),
		stamper:      services.NewIssueStamper(config.Clock),
		customerForm: newCustomerForm(),
		eventForm:    newEventForm(),
	}
	model.spinner.Style = lipgloss.NewStyle().Foreground(model.theme.Warning)
	model.refreshCatalog()
	return model
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Cart returns the cart being built.
func (model Model) Cart() *models.Cart {
	return model.cart
}

// Session returns the current checkout session.
func (model Model) Session() services.CheckoutSession {
	return model.session
}

// Focus returns the region that currently receives keys.
func (model Model) Focus() FocusRegion {
	return model.focusRegion
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.help.Width = message.Width
		model.ready = true
		return model, nil

	case spinner.TickMsg:
		// Stop ticking once the charge settles.
		if model.session.State != services.StateProcessing {
			return model, nil
		}
		var command tea.Cmd
		model.spinner, command = model.spinner.Update(message)
		return model, command

	case paymentCompletedMsg:
		return model.handlePaymentCompleted(message)

	case codeRenderedMsg:
		return model.handleCodeRendered(message), nil

	case ticketPrintedMsg:
		return model.handleTicketPrinted(message)

	case tea.KeyMsg:
		if message.Type == tea.KeyCtrlC {
			model.releaseCharge()
			model.releasePrint()
			return model, tea.Quit
		}

		switch model.focusRegion {
		case FocusSearch:
			return model.handleSearchKeys(message)
		case FocusCheckout:
			return model.handleCheckoutKeys(message)
		case FocusPreview:
			return model.handlePreviewKeys(message)
		case FocusEventForm:
			return model.handleEventFormKeys(message)
		case FocusTransactions:
			return model.handleTransactionsKeys(message)
		default:
			return model.handleMainKeys(message)
		}
	}

	return model, nil
}

func (model *Model) setStatus(message string) {
	model.status = message
	model.statusIsError = false
}

func (model *Model) setError(message string) {
	model.status = message
	model.statusIsError = true
}

func (model Model) money(cents int64) string {
	return models.FormatMoneyWithSymbol(model.config.CurrencySymbol, cents)
}
