package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"ticketbox-terminal/internal/clock"
	"ticketbox-terminal/internal/models"
)

// DefaultPaymentDelay is how long the mock provider takes to settle a charge
const DefaultPaymentDelay = 2 * time.Second

// MockPaymentProvider simulates a payment terminal. Every charge settles after
// a fixed delay measured on the injected clock.
type MockPaymentProvider struct {
	clock   clock.Clock
	delay   time.Duration
	decline atomic.Bool
	seq     atomic.Int64
	logger  *zap.Logger
}

// NewMockPaymentProvider creates a new mock payment provider
func NewMockPaymentProvider(clk clock.Clock, delay time.Duration, logger *zap.Logger) *MockPaymentProvider {
	if clk == nil {
		clk = clock.Real()
	}
	if delay < 0 {
		delay = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &MockPaymentProvider{
		clock:  clk,
		delay:  delay,
		logger: logger,
	}
}

// SetDecline makes subsequent charges fail after the delay
func (p *MockPaymentProvider) SetDecline(decline bool) {
	p.decline.Store(decline)
}

// Delay returns the configured settlement delay
func (p *MockPaymentProvider) Delay() time.Duration {
	return p.delay
}

// Charge waits for the settlement delay and reports the outcome. It returns
// ctx.Err() if the context is cancelled first.
func (p *MockPaymentProvider) Charge(ctx context.Context, amount int64, method models.PaymentMethod) (*models.PaymentResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: negative charge amount", models.ErrInvalidInput)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unsupported payment method %q", models.ErrInvalidInput, method)
	}

	p.logger.Info("mock payment processing",
		zap.String("amount", models.FormatMoney(amount)),
		zap.String("method", string(method)),
		zap.Duration("delay", p.delay),
	)

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			p.logger.Info("mock payment abandoned", zap.Error(ctx.Err()))
			return nil, ctx.Err()
		case <-p.clock.After(p.delay):
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.clock.Now()
	n := p.seq.Add(1)
	result := &models.PaymentResult{
		PaymentID:     fmt.Sprintf("mock_pay_%d_%d", now.Unix(), n),
		Status:        models.PaymentSucceeded,
		Amount:        amount,
		Method:        method,
		TransactionID: fmt.Sprintf("txn_%d_%d", now.Unix(), n),
		ProcessedAt:   now,
	}

	if p.decline.Load() {
		result.Status = models.PaymentFailed
		result.TransactionID = ""
		result.ErrorMessage = "payment declined by terminal"
		p.logger.Warn("mock payment declined", zap.String("payment_id", result.PaymentID))
		return result, fmt.Errorf("%w: %s", models.ErrPaymentDeclined, result.ErrorMessage)
	}

	p.logger.Info("mock payment settled",
		zap.String("payment_id", result.PaymentID),
		zap.String("transaction_id", result.TransactionID),
	)
	return result, nil
}
