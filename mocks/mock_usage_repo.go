package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
)

// MockUsageRepo is a mock implementation of port.UsageRepository.
type MockUsageRepo struct {
	mock.Mock
}

func (m *MockUsageRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UsageCounter, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageCounter), args.Error(1)
}

func (m *MockUsageRepo) CheckAndIncrement(ctx context.Context, userID uuid.UUID, limit int) (*domain.UsageCounter, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UsageCounter), args.Error(1)
}
