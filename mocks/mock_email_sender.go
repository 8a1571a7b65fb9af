package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendPasswordReset(ctx context.Context, msg port.PasswordReset) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockEmailSender) SendContactMessage(ctx context.Context, msg port.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
