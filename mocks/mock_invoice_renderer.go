package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"invoicegen/internal/invoice"
)

// MockInvoiceRenderer is a mock implementation of port.InvoiceRenderer.
// Content set on the mock is written to w before the configured error is returned.
type MockInvoiceRenderer struct {
	mock.Mock
	Content []byte
}

func (m *MockInvoiceRenderer) Render(w io.Writer, data invoice.InvoiceData) error {
	args := m.Called(w, data)
	if len(m.Content) > 0 {
		if _, err := w.Write(m.Content); err != nil {
			return err
		}
	}
	return args.Error(0)
}
