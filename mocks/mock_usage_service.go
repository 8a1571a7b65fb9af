package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/service"
)

// MockUsageService is a mock implementation of service.UsageService.
type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) Get(ctx context.Context, userID uuid.UUID) (*service.UsageSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UsageSummary), args.Error(1)
}

func (m *MockUsageService) Consume(ctx context.Context, userID uuid.UUID) (*service.UsageSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UsageSummary), args.Error(1)
}
