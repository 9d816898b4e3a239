package models

import "time"

// CartLine represents one ticket type in the order with an aggregated quantity
type CartLine struct {
	TicketTypeID string `json:"ticket_type_id"`
	EventID      string `json:"event_id"`
	EventName    string `json:"event_name"`
	Location     string `json:"location"`
	Name         string `json:"name"`
	UnitPrice    int64  `json:"unit_price"` // in cents
	Quantity     int    `json:"quantity"`
}

// Subtotal returns unit price times quantity in cents
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSnapshot is the cart frozen when the customer details are submitted.
// It shares no memory with the live cart.
type CartSnapshot struct {
	Lines       []CartLine `json:"lines"`
	Total       int64      `json:"total"` // in cents
	TicketCount int        `json:"ticket_count"`
	CapturedAt  time.Time  `json:"captured_at"`
}

// Cart represents the order being built at the terminal. Lines keep the order
// in which ticket types were first added; there is at most one line per
// ticket type. The zero value is an empty cart.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// AddTicket adds one unit of ticketType. A repeat add increments the existing
// line; there is no upper bound on quantity.
func (c *Cart) AddTicket(ticketType TicketType, event *Event) {
	if i := c.indexOf(ticketType.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}

	line := CartLine{
		TicketTypeID: ticketType.ID,
		Name:         ticketType.Name,
		UnitPrice:    ticketType.Price,
		Quantity:     1,
	}
	if event != nil {
		line.EventID = event.ID
		line.EventName = event.Name
		line.Location = event.Location
	}
	c.lines = append(c.lines, line)
}

// SetQuantity replaces the quantity of a line; a quantity of zero or less removes it.
// It reports whether the line exists.
func (c *Cart) SetQuantity(ticketTypeID string, quantity int) bool {
	i := c.indexOf(ticketTypeID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.removeAt(i)
		return true
	}
	c.lines[i].Quantity = quantity
	return true
}

// Remove deletes the line for ticketTypeID
func (c *Cart) Remove(ticketTypeID string) bool {
	i := c.indexOf(ticketTypeID)
	if i < 0 {
		return false
	}
	c.removeAt(i)
	return true
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Total returns the sum of unit price times quantity over all lines, in cents
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// TicketCount returns the number of individual tickets in the cart
func (c *Cart) TicketCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Snapshot freezes the current contents
func (c *Cart) Snapshot(at time.Time) CartSnapshot {
	return CartSnapshot{
		Lines:       c.Lines(),
		Total:       c.Total(),
		TicketCount: c.TicketCount(),
		CapturedAt:  at,
	}
}

func (c *Cart) indexOf(ticketTypeID string) int {
	for i := range c.lines {
		if c.lines[i].TicketTypeID == ticketTypeID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}
