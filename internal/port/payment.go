package port

import (
	"context"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// CheckoutRequest describes a hosted checkout to start.
type CheckoutRequest struct {
	UserID     uuid.UUID
	Email      string
	Plan       domain.Plan
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the provider's view of a checkout.
type CheckoutSession struct {
	ID             string
	URL            string
	Paid           bool
	UserID         string
	Plan           domain.Plan
	SubscriptionID string
}

// PaymentEventKind classifies webhook events the service acts on.
type PaymentEventKind string

const (
	PaymentEventCheckoutCompleted    PaymentEventKind = "checkout_completed"
	PaymentEventSubscriptionCanceled PaymentEventKind = "subscription_canceled"
	PaymentEventIgnored              PaymentEventKind = "ignored"
)

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	Kind           PaymentEventKind
	Session        *CheckoutSession
	SubscriptionID string
}

// PaymentProvider abstracts the hosted payment/subscription provider.
type PaymentProvider interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckout(ctx context.Context, sessionID string) (*CheckoutSession, error)
	ParseWebhook(payload []byte, signature string) (*PaymentEvent, error)
}
