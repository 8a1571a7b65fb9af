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

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	var s domain.UserSettings
	err := r.db.GetContext(ctx, &s, "SELECT * FROM user_settings WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingsRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.UserSettings) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO user_settings (user_id, default_template, currency, tax_rate, date_format,
			company_name, company_address, company_email, company_phone, logo_url, updated_at)
		VALUES (:user_id, :default_template, :currency, :tax_rate, :date_format,
			:company_name, :company_address, :company_email, :company_phone, :logo_url, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			default_template = EXCLUDED.default_template,
			currency = EXCLUDED.currency,
			tax_rate = EXCLUDED.tax_rate,
			date_format = EXCLUDED.date_format,
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			company_email = EXCLUDED.company_email,
			company_phone = EXCLUDED.company_phone,
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at`, s)
	if err != nil {
		return fmt.Errorf("settingsRepo.Upsert: %w", err)
	}
	return nil
}
