package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

// CheckoutInput is the DTO for starting a checkout.
type CheckoutInput struct {
	Plan domain.Plan `json:"plan" binding:"required"`
}

// CheckoutResult tells the client where to send the user.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// PaymentService defines the plan purchase contract.
type PaymentService interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*CheckoutResult, error)
	Confirm(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.User, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type paymentService struct {
	provider    port.PaymentProvider
	userRepo    port.UserRepository
	subRepo     port.SubscriptionRepository
	stripeCfg   config.StripeConfig
	frontendURL string
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	provider port.PaymentProvider,
	userRepo port.UserRepository,
	subRepo port.SubscriptionRepository,
	stripeCfg config.StripeConfig,
	frontendURL string,
) PaymentService {
	return &paymentService{
		provider:    provider,
		userRepo:    userRepo,
		subRepo:     subRepo,
		stripeCfg:   stripeCfg,
		frontendURL: frontendURL,
	}
}

func (s *paymentService) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*CheckoutResult, error) {
	if !input.Plan.Paid() {
		return nil, domain.ErrInvalidPlan
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess, err := s.provider.CreateCheckout(ctx, port.CheckoutRequest{
		UserID:     user.ID,
		Email:      user.Email,
		Plan:       input.Plan,
		SuccessURL: s.frontendURL + s.stripeCfg.SuccessPath,
		CancelURL:  s.frontendURL + s.stripeCfg.CancelPath,
	})
	if err != nil {
		return nil, err
	}

	if err := s.subRepo.Create(ctx, &domain.Subscription{
		UserID:            user.ID,
		Plan:              input.Plan,
		Status:            domain.SubscriptionPending,
		CheckoutSessionID: sess.ID,
	}); err != nil {
		return nil, err
	}

	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// Confirm is polled from the checkout return page. It activates the plan once
// the provider reports the session as paid.
func (s *paymentService) Confirm(ctx context.Context, userID uuid.UUID, sessionID string) (*domain.User, error) {
	sub, err := s.subRepo.GetByCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != userID {
		return nil, domain.ErrNotFound
	}

	sess, err := s.provider.GetCheckout(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Paid {
		return nil, domain.ErrPaymentIncomplete
	}
	if err := s.activate(ctx, sub, sess.SubscriptionID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhook(payload, signature)
	if err != nil {
		return err
	}
	log := logger.WithComponent("payments")

	switch event.Kind {
	case port.PaymentEventCheckoutCompleted:
		if event.Session == nil || !event.Session.Paid {
			return nil
		}
		sub, err := s.subscriptionFor(ctx, event.Session)
		if err != nil {
			return err
		}
		log.Info().Str("session_id", event.Session.ID).Str("plan", string(sub.Plan)).Msg("checkout completed")
		return s.activate(ctx, sub, event.Session.SubscriptionID)

	case port.PaymentEventSubscriptionCanceled:
		sub, err := s.subRepo.GetByExternalID(ctx, event.SubscriptionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn().Str("subscription_id", event.SubscriptionID).Msg("cancellation for unknown subscription")
				return nil
			}
			return err
		}
		return s.cancel(ctx, sub)
	}
	return nil
}

// subscriptionFor finds the record created at checkout, recreating it from the
// session metadata when the webhook arrives first or the record was lost.
func (s *paymentService) subscriptionFor(ctx context.Context, sess *port.CheckoutSession) (*domain.Subscription, error) {
	sub, err := s.subRepo.GetByCheckoutSession(ctx, sess.ID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	userID, perr := uuid.Parse(sess.UserID)
	if perr != nil || !sess.Plan.Paid() {
		return nil, fmt.Errorf("checkout %s carries no usable metadata: %w", sess.ID, domain.ErrNotFound)
	}
	sub = &domain.Subscription{
		UserID:            userID,
		Plan:              sess.Plan,
		Status:            domain.SubscriptionPending,
		CheckoutSessionID: sess.ID,
	}
	if err := s.subRepo.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// activate is idempotent: an already active subscription is left alone.
func (s *paymentService) activate(ctx context.Context, sub *domain.Subscription, externalID string) error {
	if sub.Status == domain.SubscriptionActive {
		return nil
	}
	var ext *string
	if externalID != "" {
		ext = &externalID
	}
	if err := s.subRepo.Activate(ctx, sub.ID, ext); err != nil {
		return err
	}
	// Monthly plans stay active until the provider reports a cancellation.
	if err := s.userRepo.SetPlan(ctx, sub.UserID, sub.Plan, nil); err != nil {
		return err
	}
	sub.Status = domain.SubscriptionActive
	return nil
}

func (s *paymentService) cancel(ctx context.Context, sub *domain.Subscription) error {
	if err := s.subRepo.Cancel(ctx, sub.ID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, sub.UserID)
	if err != nil {
		return err
	}
	// A lifetime purchase outlives any subscription.
	if user.Plan != domain.PlanMonthly {
		return nil
	}
	return s.userRepo.SetPlan(ctx, sub.UserID, domain.PlanFree, nil)
}
