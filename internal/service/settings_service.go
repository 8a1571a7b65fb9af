package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/port"
)

// UpdateSettingsInput is the DTO for settings updates. Nil fields are left as they are.
type UpdateSettingsInput struct {
	DefaultTemplate *string  `json:"default_template"`
	Currency        *string  `json:"currency"`
	TaxRate         *float64 `json:"tax_rate"`
	DateFormat      *string  `json:"date_format"`
	CompanyName     *string  `json:"company_name"`
	CompanyAddress  *string  `json:"company_address"`
	CompanyEmail    *string  `json:"company_email"`
	CompanyPhone    *string  `json:"company_phone"`
	LogoURL         *string  `json:"logo_url"`
}

// SettingsService defines the user settings contract.
type SettingsService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)
	Update(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*domain.UserSettings, error)
}

type settingsService struct {
	repo port.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo port.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

// DefaultSettings returns the settings of a user who never saved any.
func DefaultSettings(userID uuid.UUID) *domain.UserSettings {
	def := invoice.Default(invoice.TemplateStandard)
	return &domain.UserSettings{
		UserID:          userID,
		DefaultTemplate: invoice.TemplateStandard,
		Currency:        def.Currency,
		TaxRate:         def.TaxRate,
		DateFormat:      "2006-01-02",
	}
}

func (s *settingsService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	settings, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return DefaultSettings(userID), nil
	}
	return settings, err
}

func (s *settingsService) Update(ctx context.Context, userID uuid.UUID, input UpdateSettingsInput) (*domain.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DefaultTemplate != nil {
		settings.DefaultTemplate = invoice.Resolve(*input.DefaultTemplate)
	}
	setIf(&settings.Currency, input.Currency)
	if input.TaxRate != nil {
		settings.TaxRate = *input.TaxRate
	}
	setIf(&settings.DateFormat, input.DateFormat)
	setIf(&settings.CompanyName, input.CompanyName)
	setIf(&settings.CompanyAddress, input.CompanyAddress)
	setIf(&settings.CompanyEmail, input.CompanyEmail)
	setIf(&settings.CompanyPhone, input.CompanyPhone)
	setIf(&settings.LogoURL, input.LogoURL)

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func setIf(dst, v *string) {
	if v != nil {
		*dst = *v
	}
}
