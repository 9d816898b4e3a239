package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

// previewState is the render state for the current ticket of a run.
// job identifies the print job in flight while printing is set.
type previewState struct {
	ticketID string
	code     string
	codeErr  error
	printing bool
	job      int
	printErr error
}

// startPrintRun issues the paid session's tickets and opens the
// preview on the first one. Every run gets a fresh stamp, so a
// reopened run never repeats an earlier run's ticket ids.
func (model Model) startPrintRun() (tea.Model, tea.Cmd) {
	run, err := services.StartPrintRun(model.session, model.stamper.Next())
	if err != nil {
		model.setError(err.Error())
		return model, nil
	}
	model.run = run
	model.focusRegion = FocusPreview
	model.logger.Info("print run started",
		zap.String("session_id", model.session.ID),
		zap.Int("tickets", run.Total()))
	return model, model.loadCurrentTicket()
}

// loadCurrentTicket resets the preview for the run's current ticket
// and requests its code.
func (model *Model) loadCurrentTicket() tea.Cmd {
	ticket, err := model.run.Current()
	if err != nil {
		model.preview = previewState{}
		return nil
	}
	model.preview = previewState{ticketID: ticket.TicketID}
	if model.config.Encoder == nil {
		return nil
	}

	encoder := model.config.Encoder
	return func() tea.Msg {
		art, err := encoder.Terminal(ticket.TicketID)
		return codeRenderedMsg{ticketID: ticket.TicketID, art: art, err: err}
	}
}

// handleCodeRendered keeps a rendered code only if it belongs to the
// ticket on screen.
func (model Model) handleCodeRendered(message codeRenderedMsg) Model {
	if model.run == nil || message.ticketID != model.preview.ticketID {
		return model
	}
	model.preview.code = message.art
	model.preview.codeErr = message.err
	if message.err != nil {
		model.logger.Warn("render ticket code failed",
			zap.String("ticket_id", message.ticketID), zap.Error(message.err))
	}
	return model
}

func (model Model) handlePreviewKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Print), key.Matches(message, model.keys.Submit):
		if model.preview.printing {
			return model, nil
		}
		ticket, err := model.run.Current()
		if err != nil {
			return model, nil
		}
		if model.config.Printer == nil {
			return model.advancePrintRun()
		}
		return model.startPrintJob(ticket)

	case key.Matches(message, model.keys.Skip):
		if model.preview.printing {
			return model, nil
		}
		return model.advancePrintRun()

	case key.Matches(message, model.keys.Back):
		if model.preview.printing {
			model.logger.Info("print job cancelled",
				zap.String("ticket_id", model.preview.ticketID),
				zap.Int("job", model.preview.job))
			model.releasePrint()
			model.preview.printing = false
			model.preview.printErr = context.Canceled
			return model, nil
		}
		// Reopening starts a fresh run from the first ticket.
		model.run = nil
		model.preview = previewState{}
		model.focusRegion = FocusCheckout
	}

	return model, nil
}

// startPrintJob sends ticket to the printer under its own deadline.
// The job can be cancelled from the preview while it runs.
func (model Model) startPrintJob(ticket models.IssuedTicket) (tea.Model, tea.Cmd) {
	model.printJobs++
	ctx, cancel := context.WithTimeout(context.Background(), model.config.PrintTimeout)
	model.cancelPrint = cancel
	model.preview.printing = true
	model.preview.job = model.printJobs
	model.preview.printErr = nil

	printer := model.config.Printer
	job := model.printJobs
	return model, func() tea.Msg {
		return ticketPrintedMsg{ticketID: ticket.TicketID, job: job, err: printer.Print(ctx, ticket)}
	}
}

func (model Model) handleTicketPrinted(message ticketPrintedMsg) (tea.Model, tea.Cmd) {
	if model.run == nil || !model.preview.printing ||
		message.ticketID != model.preview.ticketID || message.job != model.preview.job {
		model.logger.Debug("dropping stale print result",
			zap.String("ticket_id", message.ticketID), zap.Int("job", message.job))
		return model, nil
	}
	model.releasePrint()
	model.preview.printing = false

	if message.err != nil {
		model.preview.printErr = message.err
		if errors.Is(message.err, context.DeadlineExceeded) {
			model.preview.printErr = fmt.Errorf("printer did not respond within %s", model.config.PrintTimeout)
		}
		model.logger.Error("print ticket failed",
			zap.String("ticket_id", message.ticketID), zap.Error(message.err))
		return model, nil
	}
	return model.advancePrintRun()
}

// advancePrintRun moves to the next ticket. Finishing the last one
// closes the sale and empties the cart.
func (model Model) advancePrintRun() (tea.Model, tea.Cmd) {
	total := model.run.Total()
	if model.run.Advance() {
		return model, model.loadCurrentTicket()
	}
	model.logger.Info("print run finished",
		zap.String("session_id", model.session.ID),
		zap.Int("tickets", total))
	return model.closeCheckout(fmt.Sprintf("Sale complete, %d ticket(s) issued", total))
}

func (model *Model) releasePrint() {
	if model.cancelPrint != nil {
		model.cancelPrint()
		model.cancelPrint = nil
	}
}
