package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"ticketbox-terminal/internal/models"
	"ticketbox-terminal/internal/services"
)

func (model Model) handleCheckoutKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch model.session.State {
	case services.StateCollectingCustomerInfo:
		return model.handleCustomerFormKeys(message)

	case services.StateProcessing:
		if key.Matches(message, model.keys.Back) {
			return model.cancelCheckout()
		}

	case services.StatePaymentFailed:
		switch {
		case key.Matches(message, model.keys.Retry):
			session, err := services.RetryPayment(model.session)
			if err != nil {
				model.setError(err.Error())
				return model, nil
			}
			model.session = session
			return model, model.customerForm.focusField(model.customerForm.focus)
		case key.Matches(message, model.keys.Back):
			return model.cancelCheckout()
		}

	case services.StateSuccess:
		switch {
		case key.Matches(message, model.keys.Print), key.Matches(message, model.keys.Submit):
			return model.startPrintRun()
		case key.Matches(message, model.keys.Back):
			return model.closeCheckout("Sale complete")
		}
	}

	return model, nil
}

func (model Model) handleCustomerFormKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Back):
		return model.cancelCheckout()
	case key.Matches(message, model.keys.NextField):
		return model, model.customerForm.next()
	case key.Matches(message, model.keys.PrevField):
		return model, model.customerForm.previous()
	case key.Matches(message, model.keys.Submit):
		return model.submitCustomerInfo()
	}
	return model, model.customerForm.update(message)
}

// submitCustomerInfo validates the form and, when it passes, starts
// the charge in the background.
func (model Model) submitCustomerInfo() (tea.Model, tea.Cmd) {
	info := models.CustomerInfo{
		Name:  model.customerForm.value("name"),
		Email: model.customerForm.value("email"),
		Phone: model.customerForm.value("phone"),
	}

	session, err := services.SubmitCustomerInfo(model.session, model.cart, info, model.config.Clock.Now())
	model.session = session
	if err != nil {
		if !model.customerForm.setErrors(err) {
			model.setError(err.Error())
		}
		return model, nil
	}

	model.customerForm.errors = nil
	model.customerForm.blur()

	ctx, cancel := context.WithCancel(context.Background())
	model.cancelCharge = cancel
	model.logger.Info("charging",
		zap.String("session_id", session.ID),
		zap.String("method", string(session.Method)),
		zap.Int64("amount", session.Snapshot.Total),
	)
	return model, tea.Batch(model.spinner.Tick, chargeCommand(ctx, model.config.Payments, session))
}

func chargeCommand(ctx context.Context, provider services.PaymentProvider, session services.CheckoutSession) tea.Cmd {
	return func() tea.Msg {
		return paymentCompletedMsg{completion: services.ChargeSession(ctx, provider, session)}
	}
}

func (model Model) handlePaymentCompleted(message paymentCompletedMsg) (tea.Model, tea.Cmd) {
	session, err := services.ApplyPaymentCompletion(model.session, message.completion)
	if err != nil {
		if errors.Is(err, models.ErrStaleCompletion) {
			model.logger.Debug("dropping stale payment completion",
				zap.String("session_id", message.completion.SessionID))
			return model, nil
		}
		model.logger.Warn("apply payment completion failed", zap.Error(err))
		return model, nil
	}

	model.releaseCharge()
	model.session = session
	if session.State == services.StatePaymentFailed {
		model.logger.Warn("payment failed",
			zap.String("session_id", session.ID),
			zap.String("reason", session.FailureReason))
	} else {
		model.logger.Info("payment completed",
			zap.String("session_id", session.ID),
			zap.String("payment_id", session.Payment.PaymentID),
			zap.String("transaction_id", session.Payment.TransactionID))
	}
	return model, nil
}

// cancelCheckout abandons the session and any charge in flight. The
// cart is kept so the sale can be retried.
func (model Model) cancelCheckout() (tea.Model, tea.Cmd) {
	session, err := services.CancelCheckout(model.session)
	if err != nil {
		model.setError(err.Error())
		return model, nil
	}
	model.releaseCharge()
	model.session = session
	model.customerForm.blur()
	model.focusRegion = FocusCatalog
	model.setStatus("Checkout cancelled")
	return model, nil
}

// closeCheckout ends a paid sale and empties the cart.
func (model Model) closeCheckout(status string) (tea.Model, tea.Cmd) {
	session, err := services.CloseCheckout(model.session, model.cart)
	if err != nil {
		model.setError(err.Error())
		return model, nil
	}
	model.releasePrint()
	model.session = session
	model.run = nil
	model.preview = previewState{}
	model.cartCursor = 0
	model.focusRegion = FocusCatalog
	model.setStatus(status)
	return model, nil
}

func (model *Model) releaseCharge() {
	if model.cancelCharge != nil {
		model.cancelCharge()
		model.cancelCharge = nil
	}
}
