package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/invoice"
)

// MockWorkspaceRepo is a mock implementation of port.WorkspaceRepository.
type MockWorkspaceRepo struct {
	mock.Mock
}

func (m *MockWorkspaceRepo) Get(ctx context.Context, userID uuid.UUID) (*invoice.Workspace, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoice.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepo) Save(ctx context.Context, userID uuid.UUID, ws *invoice.Workspace) error {
	args := m.Called(ctx, userID, ws)
	return args.Error(0)
}
