package test

import (
	"context"
	"sync"

	"github.com/feasthq/mealdesk/internal/adapter/mailer"
	"github.com/feasthq/mealdesk/internal/adapter/payment"
)

// PaymentClientStub simulates the payment provider.
type PaymentClientStub struct {
	CreateSessionFn func(context.Context, payment.CheckoutParams) (*payment.CheckoutSession, error)
	RefundFn        func(context.Context, string, float64) error
	SumRefundsFn    func(context.Context, string) (float64, error)
}

// CreateCheckoutSession delegates to the override or returns a canned
// session.
func (s PaymentClientStub) CreateCheckoutSession(ctx context.Context, params payment.CheckoutParams) (*payment.CheckoutSession, error) {
	if s.CreateSessionFn != nil {
		return s.CreateSessionFn(ctx, params)
	}
	return &payment.CheckoutSession{ID: "cs_test", RedirectURL: "https://pay.test/cs_test"}, nil
}

// IssueRefund delegates to the override or succeeds silently.
func (s PaymentClientStub) IssueRefund(ctx context.Context, intentID string, amount float64) error {
	if s.RefundFn != nil {
		return s.RefundFn(ctx, intentID, amount)
	}
	return nil
}

// SumSucceededRefunds delegates to the override or reports zero.
func (s PaymentClientStub) SumSucceededRefunds(ctx context.Context, intentID string) (float64, error) {
	if s.SumRefundsFn != nil {
		return s.SumRefundsFn(ctx, intentID)
	}
	return 0, nil
}

// MailerStub records sent messages.
type MailerStub struct {
	SendFn func(context.Context, mailer.Message) error

	mu   sync.Mutex
	sent []mailer.Message
}

// Send delegates to the override, recording the message either way.
func (s *MailerStub) Send(ctx context.Context, msg mailer.Message) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	if s.SendFn != nil {
		return s.SendFn(ctx, msg)
	}
	return nil
}

// Sent returns a copy of the recorded messages.
func (s *MailerStub) Sent() []mailer.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]mailer.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

// LockerStub records lock acquisitions per payment intent.
type LockerStub struct {
	AcquireFn func(context.Context, string) (func(), error)

	mu       sync.Mutex
	acquired []string
}

// Acquire delegates to the override or hands out a no-op release.
func (s *LockerStub) Acquire(ctx context.Context, intentID string) (func(), error) {
	s.mu.Lock()
	s.acquired = append(s.acquired, intentID)
	s.mu.Unlock()
	if s.AcquireFn != nil {
		return s.AcquireFn(ctx, intentID)
	}
	return func() {}, nil
}

// Acquired returns a copy of the recorded intent ids.
func (s *LockerStub) Acquired() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.acquired))
	copy(out, s.acquired)
	return out
}
