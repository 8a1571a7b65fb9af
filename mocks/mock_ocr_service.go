package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/service"
)

// MockOCRService is a mock implementation of service.OCRService.
type MockOCRService struct {
	mock.Mock
}

func (m *MockOCRService) Autofill(ctx context.Context, input service.AutofillInput) (*service.AutofillResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AutofillResult), args.Error(1)
}
