package models

import (
	"strings"
	"time"
)

// Date and time layouts used by event drafts and issued tickets
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Defaults applied to optional draft fields when an event is added
const (
	DefaultEventTime     = "00:00"
	DefaultEventLocation = "TBA"
	DefaultEventImageRef = "https://images.unsplash.com/photo-1533174072545-7a4b6ad7a6c3?auto=format&fit=crop&w=200&h=200"
)

// Event represents an event offered at the terminal
type Event struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Date     string       `json:"date"`
	Time     string       `json:"time"`
	ImageRef string       `json:"image_ref"`
	Category string       `json:"category"`
	Location string       `json:"location"`
	Tickets  []TicketType `json:"tickets"`
}

// EventDraft represents the data the catalog-editing form supplies to create an event
type EventDraft struct {
	Name     string            `json:"name"`
	Date     string            `json:"date"`
	Time     string            `json:"time"`
	ImageRef string            `json:"image_ref"`
	Category string            `json:"category"`
	Location string            `json:"location"`
	Tickets  []TicketTypeDraft `json:"tickets"`
}

// Validate validates the draft. Name, date and category are required; every
// failing field is reported.
func (d *EventDraft) Validate() error {
	var errs ValidationErrors

	if err := validateEventName(d.Name); err != "" {
		errs.add("name", err)
	}

	if err := validateEventDate(d.Date); err != "" {
		errs.add("date", err)
	}

	if err := validateEventTime(d.Time); err != "" {
		errs.add("time", err)
	}

	if strings.TrimSpace(d.Category) == "" {
		errs.add("category", "category is required")
	}

	for i := range d.Tickets {
		if err := d.Tickets[i].validate(); err != "" {
			errs.add("tickets", err)
		}
	}

	return errs.errOrNil()
}

// Normalize trims every field and fills in the defaults for optional ones
func (d EventDraft) Normalize() EventDraft {
	d.Name = strings.TrimSpace(d.Name)
	d.Date = strings.TrimSpace(d.Date)
	d.Time = strings.TrimSpace(d.Time)
	d.ImageRef = strings.TrimSpace(d.ImageRef)
	d.Category = strings.TrimSpace(d.Category)
	d.Location = strings.TrimSpace(d.Location)

	if d.Time == "" {
		d.Time = DefaultEventTime
	}
	if d.Location == "" {
		d.Location = DefaultEventLocation
	}
	if d.ImageRef == "" {
		d.ImageRef = DefaultEventImageRef
	}
	return d
}

// StartsAt combines the event date and time. The zero time is returned when
// either part does not parse.
func (e *Event) StartsAt() time.Time {
	start, err := time.Parse(DateLayout+" "+TimeLayout, e.Date+" "+e.Time)
	if err != nil {
		return time.Time{}
	}
	return start
}

// FindTicket returns the ticket type with the given id
func (e *Event) FindTicket(ticketTypeID string) (TicketType, bool) {
	for _, ticket := range e.Tickets {
		if ticket.ID == ticketTypeID {
			return ticket, true
		}
	}
	return TicketType{}, false
}

// MatchesSearch reports whether the event name contains term, ignoring case
func (e *Event) MatchesSearch(term string) bool {
	return strings.Contains(strings.ToLower(e.Name), strings.ToLower(term))
}

// Clone returns a copy that shares no ticket slice with e
func (e Event) Clone() Event {
	e.Tickets = append([]TicketType(nil), e.Tickets...)
	return e
}

// validateEventName validates an event name
func validateEventName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "event name is required"
	}

	if len(name) > 255 {
		return "event name must be less than 255 characters"
	}

	return ""
}

// validateEventDate validates an event date
func validateEventDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "date is required"
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return "date must be formatted as YYYY-MM-DD"
	}

	return ""
}

// validateEventTime validates the optional event time
func validateEventTime(clock string) string {
	clock = strings.TrimSpace(clock)
	if clock == "" {
		return ""
	}

	if _, err := time.Parse(TimeLayout, clock); err != nil {
		return "time must be formatted as HH:MM"
	}

	return ""
}
