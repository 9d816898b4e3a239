package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the terminal.
type KeyMap struct {
	// Navigation (context-sensitive: catalog rows or cart lines
	// depending on current focus).
	Up   key.Binding
	Down key.Binding

	// Focus switching between the catalog and the cart.
	FocusToggle key.Binding

	// Catalog.
	AddToCart    key.Binding
	Search       key.Binding
	NextCategory key.Binding
	ClearFilters key.Binding
	NewEvent     key.Binding
	Transactions key.Binding

	// Cart.
	Increase key.Binding
	Decrease key.Binding
	Remove   key.Binding

	// Payment method selection opens checkout.
	PayCash   key.Binding
	PayCard   key.Binding
	PayMobile key.Binding
	PayCoupon key.Binding

	// Modal controls.
	Submit    key.Binding
	Back      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Retry     key.Binding
	Print     key.Binding
	Skip      key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	FocusToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "catalog/cart"),
	),
	AddToCart: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "add ticket"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "category"),
	),
	ClearFilters: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear filters"),
	),
	NewEvent: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new event"),
	),
	Transactions: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "transactions"),
	),
	Increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "more"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "fewer"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	PayCash: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "cash"),
	),
	PayCard: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "card"),
	),
	PayMobile: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "mobile"),
	),
	PayCoupon: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "coupon"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "previous field"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Print: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "print"),
	),
	Skip: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "skip"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// ShortHelp implements help.KeyMap for the main screen.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		keys.FocusToggle, keys.AddToCart, keys.Search, keys.NextCategory,
		keys.PayCash, keys.PayCard, keys.PayMobile, keys.PayCoupon, keys.Quit,
	}
}

// FullHelp implements help.KeyMap for the main screen.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.FocusToggle},
		{keys.AddToCart, keys.Search, keys.NextCategory, keys.ClearFilters},
		{keys.Increase, keys.Decrease, keys.Remove},
		{keys.PayCash, keys.PayCard, keys.PayMobile, keys.PayCoupon},
		{keys.NewEvent, keys.Transactions, keys.Quit},
	}
}

// paymentMethodKeys pairs each payment binding with its method in
// display order.
func (keys KeyMap) paymentMethodKeys() []key.Binding {
	return []key.Binding{keys.PayCash, keys.PayCard, keys.PayMobile, keys.PayCoupon}
}
