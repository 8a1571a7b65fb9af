package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"invoicegen/internal/domain"
	"invoicegen/internal/export"
	"invoicegen/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Save(ctx context.Context, userID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, userID uuid.UUID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, userID uuid.UUID, offset int, limit int) ([]domain.Invoice, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Invoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) Delete(ctx context.Context, userID uuid.UUID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, userID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) Load(ctx context.Context, userID uuid.UUID, invoiceID uuid.UUID) (*service.WorkspaceView, error) {
	args := m.Called(ctx, userID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WorkspaceView), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, userID uuid.UUID, format export.Format, w io.Writer) error {
	args := m.Called(ctx, userID, format, w)
	return args.Error(0)
}
