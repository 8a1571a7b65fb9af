package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	SetPlan(ctx context.Context, userID uuid.UUID, plan domain.Plan, expiresAt *time.Time) error
	IncrementSessionVersion(ctx context.Context, userID uuid.UUID) error
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, tokenID string) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash, expectedTokenID string) error
}

// InvoiceRepository defines the contract for saved invoice persistence.
// All query methods are scoped to the owning user.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, userID, invoiceID uuid.UUID) (*domain.Invoice, error)
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Invoice, int, error)
	Delete(ctx context.Context, userID, invoiceID uuid.UUID) error
}

// SavedTemplateRepository defines the contract for saved template snapshots.
type SavedTemplateRepository interface {
	Create(ctx context.Context, t *domain.SavedTemplate) error
	GetByID(ctx context.Context, userID, templateID uuid.UUID) (*domain.SavedTemplate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error)
	Delete(ctx context.Context, userID, templateID uuid.UUID) error
}

// SettingsRepository defines the contract for per-user settings.
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Upsert(ctx context.Context, settings *domain.UserSettings) error
}

// UsageRepository defines the contract for export counters.
type UsageRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounter, error)
	// CheckAndIncrement records one export. A limit of 0 means unlimited.
	// Returns domain.ErrQuotaExceeded when the monthly limit is reached.
	CheckAndIncrement(ctx context.Context, userID uuid.UUID, limit int) (*domain.UsageCounter, error)
}

// SubscriptionRepository defines the contract for checkout/subscription records.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByCheckoutSession(ctx context.Context, sessionID string) (*domain.Subscription, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Subscription, error)
	Activate(ctx context.Context, id uuid.UUID, externalID *string) error
	Cancel(ctx context.Context, id uuid.UUID) error
}
