package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/middleware"
	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

const maxDraftBytes = 64 << 10

// CatalogHandler serves the catalog to collaborating tools
type CatalogHandler struct {
	catalog services.CatalogServiceInterface
	logger  *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog services.CatalogServiceInterface, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListEvents returns the events matching ?search= and ?category=
func (h *CatalogHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	events := h.catalog.Filter(query.Get("search"), query.Get("category"))
	writeJSON(w, http.StatusOK, events)
}

// GetEvent returns a single event
func (h *CatalogHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.catalog.GetEvent(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "event not found", nil)
			return
		}
		h.logger.Error("get event failed", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "failed to load event", nil)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateEvent adds an event from a JSON draft
func (h *CatalogHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var draft models.EventDraft
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxDraftBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&draft); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "invalid JSON body", nil)
		return
	}

	event, err := h.catalog.AddEvent(draft)
	if err != nil {
		var validationErrs models.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make(map[string]string, len(validationErrs))
			for _, e := range validationErrs {
				if _, seen := fields[e.Field]; !seen {
					fields[e.Field] = e.Message
				}
			}
			middleware.WriteError(w, http.StatusBadRequest, "invalid event", fields)
			return
		}
		h.logger.Error("add event failed", zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "failed to add event", nil)
		return
	}

	w.Header().Set("Location", "/api/events/"+event.ID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": event.ID})
}

// ListCategories returns the distinct event categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Categories())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
