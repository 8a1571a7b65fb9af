package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
)

type subscriptionRepo struct {
	db *sqlx.DB
}

// NewSubscriptionRepo creates a new PostgreSQL-backed SubscriptionRepository.
func NewSubscriptionRepo(db *sqlx.DB) port.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	sub.ID = uuid.New()
	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if sub.Status == "" {
		sub.Status = domain.SubscriptionPending
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (id, user_id, plan, status, checkout_session_id, external_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		sub.ID, sub.UserID, sub.Plan, sub.Status, sub.CheckoutSessionID, sub.ExternalID,
		sub.CreatedAt, sub.UpdatedAt)
	if isUniqueViolation(err, "") {
		return fmt.Errorf("subscriptionRepo.Create: checkout session already recorded: %w", err)
	}
	if err != nil {
		return fmt.Errorf("subscriptionRepo.Create: %w", err)
	}
	return nil
}

func (r *subscriptionRepo) GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Subscription, error) {
	return r.getOne(ctx, "subscriptionRepo.GetByCheckoutSession",
		"SELECT * FROM subscriptions WHERE checkout_session_id = $1", sessionID)
}

func (r *subscriptionRepo) GetByExternalID(ctx context.Context, externalID string) (*domain.Subscription, error) {
	return r.getOne(ctx, "subscriptionRepo.GetByExternalID",
		"SELECT * FROM subscriptions WHERE external_id = $1", externalID)
}

func (r *subscriptionRepo) getOne(ctx context.Context, op, query string, arg any) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := r.db.GetContext(ctx, &sub, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

func (r *subscriptionRepo) Activate(ctx context.Context, id uuid.UUID, externalID *string) error {
	return execOne(ctx, r.db, "subscriptionRepo.Activate", domain.ErrNotFound,
		`UPDATE subscriptions SET status = $1, external_id = COALESCE($2, external_id), updated_at = NOW()
		 WHERE id = $3`,
		domain.SubscriptionActive, externalID, id)
}

func (r *subscriptionRepo) Cancel(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, r.db, "subscriptionRepo.Cancel", domain.ErrNotFound,
		`UPDATE subscriptions SET status = $1, updated_at = NOW() WHERE id = $2`,
		domain.SubscriptionCanceled, id)
}
