package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockSavedTemplateRepo is a mock implementation of port.SavedTemplateRepository.
type MockSavedTemplateRepo struct {
	mock.Mock
}

func (m *MockSavedTemplateRepo) Create(ctx context.Context, t *domain.SavedTemplate) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockSavedTemplateRepo) GetByID(ctx context.Context, userID uuid.UUID, templateID uuid.UUID) (*domain.SavedTemplate, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedTemplate), args.Error(1)
}

func (m *MockSavedTemplateRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedTemplate), args.Error(1)
}

func (m *MockSavedTemplateRepo) Delete(ctx context.Context, userID uuid.UUID, templateID uuid.UUID) error {
	args := m.Called(ctx, userID, templateID)
	return args.Error(0)
}
