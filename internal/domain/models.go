package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents an account holder.
type User struct {
	ID                   uuid.UUID  `db:"id" json:"id"`
	Email                string     `db:"email" json:"email"`
	PasswordHash         string     `db:"password_hash" json:"-"`
	FullName             string     `db:"full_name" json:"full_name"`
	Plan                 Plan       `db:"plan" json:"plan"`
	PlanExpiresAt        *time.Time `db:"plan_expires_at" json:"plan_expires_at,omitempty"`
	IsActive             bool       `db:"is_active" json:"is_active"`
	SessionVersion       int        `db:"session_version" json:"-"`
	PasswordResetTokenID *string    `db:"password_reset_token_id" json:"-"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}

// EffectivePlan returns the plan in force at now, falling back to free once a
// time-limited plan has lapsed.
func (u *User) EffectivePlan(now time.Time) Plan {
	if u.Plan == PlanMonthly && u.PlanExpiresAt != nil && now.After(*u.PlanExpiresAt) {
		return PlanFree
	}
	if u.Plan == "" {
		return PlanFree
	}
	return u.Plan
}

// Invoice is a saved snapshot of a template state and its derived data.
type Invoice struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	TemplateID    string          `db:"template_id" json:"template_id"`
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	ClientName    string          `db:"client_name" json:"client_name"`
	Currency      string          `db:"currency" json:"currency"`
	Subtotal      float64         `db:"subtotal" json:"subtotal"`
	TaxAmount     float64         `db:"tax_amount" json:"tax_amount"`
	Total         float64         `db:"total" json:"total"`
	State         json.RawMessage `db:"state" json:"state" swaggertype:"object"`
	Data          json.RawMessage `db:"data" json:"data" swaggertype:"object"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// SavedTemplate is a named snapshot of one template record.
type SavedTemplate struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	UserID     uuid.UUID       `db:"user_id" json:"user_id"`
	Name       string          `db:"name" json:"name"`
	TemplateID string          `db:"template_id" json:"template_id"`
	Data       json.RawMessage `db:"data" json:"data" swaggertype:"object"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// UserSettings holds per-user defaults applied to new workspaces.
type UserSettings struct {
	UserID          uuid.UUID `db:"user_id" json:"user_id"`
	DefaultTemplate string    `db:"default_template" json:"default_template"`
	Currency        string    `db:"currency" json:"currency"`
	TaxRate         float64   `db:"tax_rate" json:"tax_rate"`
	DateFormat      string    `db:"date_format" json:"date_format"`
	CompanyName     string    `db:"company_name" json:"company_name"`
	CompanyAddress  string    `db:"company_address" json:"company_address"`
	CompanyEmail    string    `db:"company_email" json:"company_email"`
	CompanyPhone    string    `db:"company_phone" json:"company_phone"`
	LogoURL         string    `db:"logo_url" json:"logo_url"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// UsageCounter tracks exports per user.
type UsageCounter struct {
	UserID             uuid.UUID  `db:"user_id" json:"-"`
	DownloadsThisMonth int        `db:"downloads_this_month" json:"downloads_this_month"`
	TotalDownloads     int        `db:"total_downloads" json:"total_downloads"`
	LastDownloadDate   *time.Time `db:"last_download_date" json:"last_download_date"`
}

// Subscription records one checkout attempt and the plan it grants.
type Subscription struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	UserID            uuid.UUID          `db:"user_id" json:"user_id"`
	Plan              Plan               `db:"plan" json:"plan"`
	Status            SubscriptionStatus `db:"status" json:"status"`
	CheckoutSessionID string             `db:"checkout_session_id" json:"checkout_session_id"`
	ExternalID        *string            `db:"external_id" json:"external_id,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}
