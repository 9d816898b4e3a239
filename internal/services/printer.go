package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ticketbox-terminal/internal/models"
)

// TicketPrinter encodes, renders and spools one issued ticket at a time
type TicketPrinter struct {
	encoder  CodeEncoder
	renderer *TicketPDFRenderer
	spooler  Spooler
	logger   *zap.Logger
}

// NewTicketPrinter creates a new ticket printer
func NewTicketPrinter(encoder CodeEncoder, renderer *TicketPDFRenderer, spooler Spooler, logger *zap.Logger) *TicketPrinter {
	if renderer == nil {
		renderer = NewTicketPDFRenderer()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TicketPrinter{
		encoder:  encoder,
		renderer: renderer,
		spooler:  spooler,
		logger:   logger,
	}
}

// Print sends the ticket to the configured print target
func (p *TicketPrinter) Print(ctx context.Context, ticket models.IssuedTicket) error {
	qr, err := p.encoder.Encode(ticket.TicketID)
	if err != nil {
		return fmt.Errorf("print ticket %s: %w", ticket.TicketID, err)
	}

	document, err := p.renderer.Render(ticket, qr)
	if err != nil {
		return fmt.Errorf("print ticket %s: %w", ticket.TicketID, err)
	}

	if err := p.spooler.Spool(ctx, ticket.TicketID, document); err != nil {
		return fmt.Errorf("print ticket %s: %w", ticket.TicketID, err)
	}

	p.logger.Info("ticket printed",
		zap.String("ticket_id", ticket.TicketID),
		zap.String("number", ticket.Number()),
		zap.Int("bytes", len(document)),
	)
	return nil
}
