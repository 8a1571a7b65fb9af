package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func TestSettingsService_Get_DefaultsWhenMissing(t *testing.T) {
	repo := new(mocks.MockSettingsRepo)
	svc := service.NewSettingsService(repo)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(nil, domain.ErrNotFound)

	settings, err := svc.Get(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, service.DefaultSettings(userID), settings)
	assert.Equal(t, invoice.TemplateStandard, settings.DefaultTemplate)
}

func TestSettingsService_Update_MergesAndResolvesTemplate(t *testing.T) {
	repo := new(mocks.MockSettingsRepo)
	svc := service.NewSettingsService(repo)
	userID := uuid.New()

	repo.On("Get", mock.Anything, userID).Return(&domain.UserSettings{
		UserID: userID, DefaultTemplate: invoice.TemplateLegal, Currency: "USD", CompanyName: "Old Co",
	}, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	unknown := "no-such-template"
	name := "New Co"
	rate := 7.25
	settings, err := svc.Update(context.Background(), userID, service.UpdateSettingsInput{
		DefaultTemplate: &unknown,
		CompanyName:     &name,
		TaxRate:         &rate,
	})

	require.NoError(t, err)
	assert.Equal(t, invoice.TemplateStandard, settings.DefaultTemplate)
	assert.Equal(t, "New Co", settings.CompanyName)
	assert.Equal(t, 7.25, settings.TaxRate)
	assert.Equal(t, "USD", settings.Currency)
	repo.AssertCalled(t, "Upsert", mock.Anything, settings)
}
