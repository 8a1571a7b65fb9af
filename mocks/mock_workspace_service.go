package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/invoice"
	"invoicegen/internal/service"
)

// MockWorkspaceService is a mock implementation of service.WorkspaceService.
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) Get(ctx context.Context, userID uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) UpdateTemplateState(ctx context.Context, userID uuid.UUID, patch invoice.Patch) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) ToggleElement(ctx context.Context, userID uuid.UUID, element invoice.Element) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, element)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) AddInvoiceItem(ctx context.Context, userID uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) RemoveInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) UpdateInvoiceItem(ctx context.Context, userID uuid.UUID, itemID int, patch invoice.ItemPatch) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, itemID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) AddCustomField(ctx context.Context, userID uuid.UUID, input service.AddCustomFieldInput) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) UpdateCustomField(ctx context.Context, userID uuid.UUID, fieldID string, patch invoice.CustomFieldPatch) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, fieldID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) RemoveCustomField(ctx context.Context, userID uuid.UUID, fieldID string) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, fieldID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) SwitchTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) ResetTemplate(ctx context.Context, userID uuid.UUID, templateID string) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockWorkspaceService) Replace(ctx context.Context, userID uuid.UUID, templateID string, state *invoice.TemplateState) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, templateID, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}
