package services

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/models"
)

// Layouts printed on issued tickets
const (
	IssueDateLayout = "2006-01-02"
	IssueTimeLayout = "15:04:05"
)

// TicketIDPattern matches the ids produced by IssueTickets:
// TIX-<issue millis>-<position>.
var TicketIDPattern = regexp.MustCompile(`^TIX-\d+-\d+$`)

// ValidTicketID reports whether id has the issued ticket id format
func ValidTicketID(id string) bool {
	return TicketIDPattern.MatchString(id)
}

// IssueStamper hands out issuance instants that strictly increase at
// millisecond resolution, so two runs never share ticket ids.
type IssueStamper struct {
	clock clock.Clock
	mu    sync.Mutex
	last  int64
}

// NewIssueStamper creates a stamper reading the given clock
func NewIssueStamper(clk clock.Clock) *IssueStamper {
	if clk == nil {
		clk = clock.Real()
	}
	return &IssueStamper{clock: clk}
}

// Next returns the clock's current time, bumped one millisecond past the
// previous stamp when the clock has not moved on.
func (s *IssueStamper) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	stamp := now.UnixMilli()
	if stamp <= s.last {
		stamp = s.last + 1
		now = time.UnixMilli(stamp).In(now.Location())
	}
	s.last = stamp
	return now
}

// IssueTickets expands a paid cart snapshot into one ticket per unit, in
// cart order. Seat labels restart for every line; positions and ticket ids
// run across the whole issuance.
func IssueTickets(snapshot models.CartSnapshot, customer models.CustomerInfo, issuedAt time.Time) []models.IssuedTicket {
	total := 0
	for _, line := range snapshot.Lines {
		if line.Quantity > 0 {
			total += line.Quantity
		}
	}

	tickets := make([]models.IssuedTicket, 0, total)
	stamp := issuedAt.UnixMilli()
	issueDate := issuedAt.Format(IssueDateLayout)
	issueTime := issuedAt.Format(IssueTimeLayout)

	position := 0
	for _, line := range snapshot.Lines {
		for seat := 1; seat <= line.Quantity; seat++ {
			position++
			tickets = append(tickets, models.IssuedTicket{
				EventName:      line.EventName,
				TicketTypeName: line.Name,
				CustomerName:   customer.Name,
				TicketID:       ticketID(stamp, position),
				IssueDate:      issueDate,
				IssueTime:      issueTime,
				Location:       line.Location,
				SeatLabel:      models.SeatLabel(seat),
				Position:       position,
				Total:          total,
			})
		}
	}

	return tickets
}

func ticketID(stamp int64, position int) string {
	return fmt.Sprintf("TIX-%d-%d", stamp, position)
}

// PrintRun walks an issuance one ticket at a time. A run only moves forward
// and cannot be restarted; a new checkout produces a new run.
type PrintRun struct {
	tickets []models.IssuedTicket
	index   int
}

// NewPrintRun creates a run positioned on the first ticket
func NewPrintRun(tickets []models.IssuedTicket) *PrintRun {
	return &PrintRun{tickets: append([]models.IssuedTicket(nil), tickets...)}
}

// StartPrintRun issues the tickets for a paid session and wraps them in a run
func StartPrintRun(session CheckoutSession, issuedAt time.Time) (*PrintRun, error) {
	if session.State != StateSuccess || session.Snapshot == nil {
		return nil, transitionError(session.State, "issue tickets")
	}
	return NewPrintRun(IssueTickets(*session.Snapshot, session.Customer, issuedAt)), nil
}

// Current returns the ticket on screen. It fails once the run is finished.
func (r *PrintRun) Current() (models.IssuedTicket, error) {
	if r.Done() {
		return models.IssuedTicket{}, models.ErrRunFinished
	}
	return r.tickets[r.index], nil
}

// Advance moves to the next ticket and reports whether one remains. After
// the last ticket the run is retired.
func (r *PrintRun) Advance() bool {
	if r.Done() {
		return false
	}
	r.index++
	return !r.Done()
}

// Position is the 1-based position of the current ticket
func (r *PrintRun) Position() int {
	if r.Done() {
		return len(r.tickets)
	}
	return r.index + 1
}

// Total is the number of tickets in the run
func (r *PrintRun) Total() int {
	return len(r.tickets)
}

// Done reports whether every ticket has been printed
func (r *PrintRun) Done() bool {
	return r.index >= len(r.tickets)
}

// Tickets returns a copy of every ticket in the run
func (r *PrintRun) Tickets() []models.IssuedTicket {
	return append([]models.IssuedTicket(nil), r.tickets...)
}
