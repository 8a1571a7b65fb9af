package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/port"
)

// MockObjectStorage is a mock implementation of port.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Put(ctx context.Context, obj port.StoredObject) error {
	args := m.Called(ctx, obj)
	return args.Error(0)
}

func (m *MockObjectStorage) SignedURL(ctx context.Context, key, downloadName string) (string, error) {
	args := m.Called(ctx, key, downloadName)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStorage) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
