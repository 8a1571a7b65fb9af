package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"invoicegen/internal/domain"
	"invoicegen/internal/handler"
	"invoicegen/internal/invoice"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped not found", fmt.Errorf("repo: %w", domain.ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive", domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{"quota", domain.ErrQuotaExceeded, http.StatusTooManyRequests, "QUOTA_EXCEEDED"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"payment incomplete", domain.ErrPaymentIncomplete, http.StatusPaymentRequired, "PAYMENT_INCOMPLETE"},
		{"export format", domain.ErrInvalidExportFormat, http.StatusBadRequest, "INVALID_FORMAT"},
		{"email delivery", domain.ErrEmailDelivery, http.StatusBadGateway, "EMAIL_DELIVERY_FAILED"},
		{"missing field", fmt.Errorf("name: %w", domain.ErrMissingField), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"incomplete invoice", domain.ErrInvalidInvoice, http.StatusBadRequest, "INVALID_INVOICE"},
		{"unknown element", invoice.ErrUnknownElement, http.StatusBadRequest, "UNKNOWN_ELEMENT"},
		{"invalid custom field", fmt.Errorf("custom field %q: %w", "a", invoice.ErrInvalidCustomField), http.StatusBadRequest, "INVALID_CUSTOM_FIELD"},
		{"duplicate id", fmt.Errorf("%w: line item 3", invoice.ErrDuplicateID), http.StatusBadRequest, "DUPLICATE_ID"},
		{"custom field missing", invoice.ErrCustomFieldMissing, http.StatusNotFound, "CUSTOM_FIELD_NOT_FOUND"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_ValidationErrorListsIssues(t *testing.T) {
	err := &domain.ValidationError{Issues: []invoice.ValidationIssue{
		{Field: "billFrom.name", Message: "sender name is required"},
		{Field: "invoiceNumber", Message: "invoice number is required"},
	}}

	status, code, msg := handler.MapDomainError(err)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_INVOICE", code)
	assert.Equal(t, "sender name is required; invoice number is required", msg)
}
