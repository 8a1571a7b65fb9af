package domain

import (
	"errors"
	"strings"

	"invoicegen/internal/invoice"
)

var (
	ErrNotFound                  = errors.New("resource not found")
	ErrUnauthorized              = errors.New("unauthorized")
	ErrForbidden                 = errors.New("forbidden")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserInactive              = errors.New("user is inactive")
	ErrUnsupportedFileType       = errors.New("unsupported file type")
	ErrFileTooLarge              = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail            = errors.New("email already exists")
	ErrUploadFailed              = errors.New("file upload to storage failed")
	ErrQuotaExceeded             = errors.New("monthly export quota exceeded")
	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or has already been used")
	ErrInvalidPlan               = errors.New("invalid plan")
	ErrPaymentIncomplete         = errors.New("payment has not completed")
	ErrWebhookSignature          = errors.New("webhook signature verification failed")
	ErrNoTextFound               = errors.New("no readable text found in document")
	ErrTextExtraction            = errors.New("text extraction failed")
	ErrInvalidExportFormat       = errors.New("invalid export format")
	ErrEmailDelivery             = errors.New("email delivery failed")
	ErrInvalidInvoice            = errors.New("invoice is incomplete")
	ErrMissingField              = errors.New("required field is empty")
)

// ValidationError carries the failed required-field checks of an invoice.
type ValidationError struct {
	Issues []invoice.ValidationIssue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Message
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInvoice
}
