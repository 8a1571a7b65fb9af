package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/service"
)

// MockAssetService is a mock implementation of service.AssetService.
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Upload(ctx context.Context, input service.AssetUploadInput) (*service.Asset, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Asset), args.Error(1)
}
