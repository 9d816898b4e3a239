package services

import (
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/models"
)

// CatalogService holds the events on sale at the terminal. Events are only
// ever appended; the store is safe for concurrent use.
type CatalogService struct {
	mu     sync.RWMutex
	events []models.Event
	lastID int64
	clock  clock.Clock
	logger *zap.Logger
}

// NewCatalogService creates a catalog seeded with events
func NewCatalogService(events []models.Event, clk clock.Clock, logger *zap.Logger) *CatalogService {
	if clk == nil {
		clk = clock.Real()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	seeded := make([]models.Event, 0, len(events))
	for _, event := range events {
		seeded = append(seeded, event.Clone())
	}

	return &CatalogService{
		events: seeded,
		clock:  clk,
		logger: logger,
	}
}

// Events returns every event in catalog order
func (s *CatalogService) Events() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneWhere(func(*models.Event) bool { return true })
}

// GetEvent returns the event with the given id
func (s *CatalogService) GetEvent(id string) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if s.events[i].ID == id {
			event := s.events[i].Clone()
			return &event, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrEventNotFound, id)
}

// FindTicketType returns a ticket type together with the event that owns it
func (s *CatalogService) FindTicketType(ticketTypeID string) (models.TicketType, *models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.events {
		if ticket, ok := s.events[i].FindTicket(ticketTypeID); ok {
			event := s.events[i].Clone()
			return ticket, &event, nil
		}
	}
	return models.TicketType{}, nil, fmt.Errorf("%w: %s", models.ErrTicketTypeNotFound, ticketTypeID)
}

// AddEvent validates the draft and appends a new event. The id is derived
// from the clock and is strictly increasing across adds.
func (s *CatalogService) AddEvent(draft models.EventDraft) (*models.Event, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event: %w", err)
	}
	draft = draft.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextIDLocked()
	event := models.Event{
		ID:       id,
		Name:     draft.Name,
		Date:     draft.Date,
		Time:     draft.Time,
		ImageRef: draft.ImageRef,
		Category: draft.Category,
		Location: draft.Location,
		Tickets:  make([]models.TicketType, 0, len(draft.Tickets)),
	}
	for i, ticket := range draft.Tickets {
		event.Tickets = append(event.Tickets, models.TicketType{
			ID:          fmt.Sprintf("%s-%d", id, i+1),
			Name:        ticket.Name,
			Price:       ticket.Price,
			Description: ticket.Description,
		})
	}

	s.events = append(s.events, event)

	s.logger.Info("event added",
		zap.String("event_id", event.ID),
		zap.String("name", event.Name),
		zap.String("category", event.Category),
		zap.Int("ticket_types", len(event.Tickets)),
	)

	added := event.Clone()
	return &added, nil
}

// Filter returns the events whose name contains searchTerm (ignoring case)
// and whose category equals category. An empty category matches every event.
func (s *CatalogService) Filter(searchTerm, category string) []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cloneWhere(func(event *models.Event) bool {
		if category != "" && event.Category != category {
			return false
		}
		return event.MatchesSearch(searchTerm)
	})
}

// Categories returns the distinct categories in order of first appearance
func (s *CatalogService) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(s.events))
	categories := make([]string, 0, len(s.events))
	for _, event := range s.events {
		if seen[event.Category] {
			continue
		}
		seen[event.Category] = true
		categories = append(categories, event.Category)
	}
	return categories
}

func (s *CatalogService) cloneWhere(keep func(*models.Event) bool) []models.Event {
	result := make([]models.Event, 0, len(s.events))
	for i := range s.events {
		if keep(&s.events[i]) {
			result = append(result, s.events[i].Clone())
		}
	}
	return result
}

// nextIDLocked must be called with s.mu held
func (s *CatalogService) nextIDLocked() string {
	id := s.clock.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}
