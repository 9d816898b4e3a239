package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/middleware"
	"ticketbox-terminal/internal/services"
)

// TicketHandler renders scannable codes for issued ticket ids
type TicketHandler struct {
	encoder services.CodeEncoder
	logger  *zap.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(encoder services.CodeEncoder, logger *zap.Logger) *TicketHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketHandler{encoder: encoder, logger: logger}
}

// QRCode returns the PNG code for a ticket id
func (h *TicketHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "ticketID")
	if !services.ValidTicketID(ticketID) {
		middleware.WriteError(w, http.StatusBadRequest, "invalid ticket id", nil)
		return
	}

	png, err := h.encoder.Encode(ticketID)
	if err != nil {
		h.logger.Error("encode qr code failed", zap.String("ticket_id", ticketID), zap.Error(err))
		middleware.WriteError(w, http.StatusInternalServerError, "failed to encode ticket", nil)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
