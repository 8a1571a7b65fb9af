// Package stripe adapts Stripe Checkout and webhooks to port.PaymentProvider.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
	"github.com/stripe/stripe-go/v74/webhook"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

const (
	metaUserID = "user_id"
	metaPlan   = "plan"

	eventCheckoutCompleted   = "checkout.session.completed"
	eventSubscriptionDeleted = "customer.subscription.deleted"
)

type provider struct {
	api *client.API
	cfg config.StripeConfig
}

// NewProvider creates a Stripe-backed PaymentProvider.
func NewProvider(cfg config.StripeConfig) port.PaymentProvider {
	return &provider{api: client.New(cfg.SecretKey, nil), cfg: cfg}
}

func (p *provider) CreateCheckout(ctx context.Context, req port.CheckoutRequest) (*port.CheckoutSession, error) {
	price, mode, err := p.priceFor(req.Plan)
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(mode),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(price), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID.String()),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata(metaUserID, req.UserID.String())
	params.AddMetadata(metaPlan, string(req.Plan))

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe.CreateCheckout: %w", err)
	}
	return toSession(sess), nil
}

func (p *provider) GetCheckout(ctx context.Context, sessionID string) (*port.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	sess, err := p.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		if serr, ok := err.(*stripe.Error); ok && serr.Code == stripe.ErrorCodeResourceMissing {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stripe.GetCheckout: %w", err)
	}
	return toSession(sess), nil
}

func (p *provider) ParseWebhook(payload []byte, signature string) (*port.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.cfg.WebhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWebhookSignature, err)
	}
	return parseEvent(event)
}

func parseEvent(event stripe.Event) (*port.PaymentEvent, error) {
	switch string(event.Type) {
	case eventCheckoutCompleted:
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return nil, fmt.Errorf("stripe.ParseWebhook session: %w", err)
		}
		return &port.PaymentEvent{Kind: port.PaymentEventCheckoutCompleted, Session: toSession(&sess)}, nil
	case eventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("stripe.ParseWebhook subscription: %w", err)
		}
		return &port.PaymentEvent{Kind: port.PaymentEventSubscriptionCanceled, SubscriptionID: sub.ID}, nil
	}
	return &port.PaymentEvent{Kind: port.PaymentEventIgnored}, nil
}

func (p *provider) priceFor(plan domain.Plan) (price, mode string, err error) {
	switch plan {
	case domain.PlanMonthly:
		return p.cfg.PriceMonthly, string(stripe.CheckoutSessionModeSubscription), nil
	case domain.PlanLifetime:
		return p.cfg.PriceLifetime, string(stripe.CheckoutSessionModePayment), nil
	}
	return "", "", domain.ErrInvalidPlan
}

func toSession(s *stripe.CheckoutSession) *port.CheckoutSession {
	out := &port.CheckoutSession{
		ID:     s.ID,
		URL:    s.URL,
		Paid:   s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		UserID: s.ClientReferenceID,
	}
	if v := s.Metadata[metaUserID]; v != "" {
		out.UserID = v
	}
	out.Plan = domain.Plan(s.Metadata[metaPlan])
	if s.Subscription != nil {
		out.SubscriptionID = s.Subscription.ID
	}
	return out
}
