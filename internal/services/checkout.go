package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ticketbox-terminal/internal/models"
)

// CheckoutState is the stage a checkout session is in
type CheckoutState int

const (
	StateAwaitingPaymentSelection CheckoutState = iota
	StateCollectingCustomerInfo
	StateProcessing
	StateSuccess
	StatePaymentFailed
)

func (s CheckoutState) String() string {
	switch s {
	case StateAwaitingPaymentSelection:
		return "awaiting_payment_selection"
	case StateCollectingCustomerInfo:
		return "collecting_customer_info"
	case StateProcessing:
		return "processing"
	case StateSuccess:
		return "success"
	case StatePaymentFailed:
		return "payment_failed"
	default:
		return fmt.Sprintf("checkout_state(%d)", int(s))
	}
}

// CheckoutSession is one attempt to sell the cart contents. Sessions are
// values: every transition returns a new session and leaves its input alone.
type CheckoutSession struct {
	ID            string
	State         CheckoutState
	Method        models.PaymentMethod
	Customer      models.CustomerInfo
	Snapshot      *models.CartSnapshot
	Payment       *models.PaymentResult
	FailureReason string
}

// PaymentCompletion is the outcome of a charge, tagged with the session that started it
type PaymentCompletion struct {
	SessionID string
	Result    *models.PaymentResult
	Err       error
}

// NewCheckoutSession returns an idle session waiting for a payment method
func NewCheckoutSession() CheckoutSession {
	return CheckoutSession{State: StateAwaitingPaymentSelection}
}

// Active reports whether a checkout modal should be showing
func (s CheckoutSession) Active() bool {
	return s.State != StateAwaitingPaymentSelection
}

// SelectPaymentMethod starts a checkout. An empty cart leaves the session
// unchanged and returns ErrEmptyCart.
func SelectPaymentMethod(session CheckoutSession, cart *models.Cart, method models.PaymentMethod) (CheckoutSession, error) {
	if session.State != StateAwaitingPaymentSelection {
		return session, transitionError(session.State, "select payment method")
	}
	if cart == nil || cart.IsEmpty() {
		return session, models.ErrEmptyCart
	}
	if !method.IsValid() {
		return session, fmt.Errorf("%w: unsupported payment method %q", models.ErrInvalidInput, method)
	}

	return CheckoutSession{
		ID:     uuid.NewString(),
		State:  StateCollectingCustomerInfo,
		Method: method,
	}, nil
}

// SubmitCustomerInfo validates the customer fields and freezes the cart
// contents the session will charge and issue for.
func SubmitCustomerInfo(session CheckoutSession, cart *models.Cart, info models.CustomerInfo, now time.Time) (CheckoutSession, error) {
	if session.State != StateCollectingCustomerInfo {
		return session, transitionError(session.State, "submit customer info")
	}

	info = info.Trimmed()
	session.Customer = info
	if err := info.Validate(); err != nil {
		return session, err
	}
	if cart == nil || cart.IsEmpty() {
		return session, models.ErrEmptyCart
	}

	snapshot := cart.Snapshot(now)
	session.Snapshot = &snapshot
	session.Payment = nil
	session.FailureReason = ""
	session.State = StateProcessing
	return session, nil
}

// ChargeSession runs the charge for a processing session. It blocks for as
// long as the provider does and is meant to run off the UI loop.
func ChargeSession(ctx context.Context, provider PaymentProvider, session CheckoutSession) PaymentCompletion {
	completion := PaymentCompletion{SessionID: session.ID}
	if session.State != StateProcessing || session.Snapshot == nil {
		completion.Err = transitionError(session.State, "charge")
		return completion
	}

	result, err := provider.Charge(ctx, session.Snapshot.Total, session.Method)
	completion.Result = result
	if err != nil {
		completion.Err = fmt.Errorf("charge session %s: %w", session.ID, err)
	} else if !result.Succeeded() {
		completion.Err = fmt.Errorf("charge session %s: %w", session.ID, models.ErrPaymentDeclined)
	}
	return completion
}

// ApplyPaymentCompletion folds a charge outcome into the session it belongs
// to. Completions for any other session, or arriving after the session left
// Processing, return ErrStaleCompletion.
func ApplyPaymentCompletion(session CheckoutSession, completion PaymentCompletion) (CheckoutSession, error) {
	if session.State != StateProcessing || completion.SessionID != session.ID {
		return session, fmt.Errorf("%w: session %q", models.ErrStaleCompletion, completion.SessionID)
	}

	session.Payment = completion.Result
	if completion.Err != nil {
		session.State = StatePaymentFailed
		session.FailureReason = failureReason(completion)
		return session, nil
	}

	session.State = StateSuccess
	return session, nil
}

// RetryPayment returns a failed session to the customer form. The method and
// customer fields are kept; the cart is captured again on the next submit.
func RetryPayment(session CheckoutSession) (CheckoutSession, error) {
	if session.State != StatePaymentFailed {
		return session, transitionError(session.State, "retry payment")
	}

	session.State = StateCollectingCustomerInfo
	session.Snapshot = nil
	session.Payment = nil
	session.FailureReason = ""
	return session, nil
}

// CancelCheckout abandons any session that has not been paid. The cart is
// not touched.
func CancelCheckout(session CheckoutSession) (CheckoutSession, error) {
	if session.State == StateSuccess {
		return session, transitionError(session.State, "cancel")
	}
	return NewCheckoutSession(), nil
}

// CloseCheckout finishes a paid session: the cart is cleared and the
// customer details are dropped with the session.
func CloseCheckout(session CheckoutSession, cart *models.Cart) (CheckoutSession, error) {
	if session.State != StateSuccess {
		return session, transitionError(session.State, "close")
	}
	if cart != nil {
		cart.Clear()
	}
	return NewCheckoutSession(), nil
}

func transitionError(state CheckoutState, action string) error {
	return fmt.Errorf("%w: cannot %s while %s", models.ErrInvalidTransition, action, state)
}

func failureReason(completion PaymentCompletion) string {
	if completion.Result != nil && completion.Result.ErrorMessage != "" {
		return completion.Result.ErrorMessage
	}
	return completion.Err.Error()
}
