package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// MockSavedTemplateService is a mock implementation of service.SavedTemplateService.
type MockSavedTemplateService struct {
	mock.Mock
}

func (m *MockSavedTemplateService) Create(ctx context.Context, userID uuid.UUID, input service.CreateSavedTemplateInput) (*domain.SavedTemplate, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavedTemplate), args.Error(1)
}

func (m *MockSavedTemplateService) List(ctx context.Context, userID uuid.UUID) ([]domain.SavedTemplate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SavedTemplate), args.Error(1)
}

func (m *MockSavedTemplateService) Apply(ctx context.Context, userID uuid.UUID, templateID uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockSavedTemplateService) Delete(ctx context.Context, userID uuid.UUID, templateID uuid.UUID) error {
	args := m.Called(ctx, userID, templateID)
	return args.Error(0)
}
