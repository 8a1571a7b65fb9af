package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "INVALID_INVOICE", verr.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "an account with this email already exists"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return http.StatusTooManyRequests, "QUOTA_EXCEEDED", "monthly download limit reached; upgrade for unlimited downloads"
	case errors.Is(err, domain.ErrPasswordResetTokenInvalid):
		return http.StatusUnauthorized, "INVALID_RESET_TOKEN", "password reset token is invalid or has already been used"
	case errors.Is(err, domain.ErrInvalidPlan):
		return http.StatusBadRequest, "INVALID_PLAN", "invalid plan; allowed: monthly, lifetime"
	case errors.Is(err, domain.ErrPaymentIncomplete):
		return http.StatusPaymentRequired, "PAYMENT_INCOMPLETE", "payment has not completed"
	case errors.Is(err, domain.ErrWebhookSignature):
		return http.StatusBadRequest, "INVALID_SIGNATURE", "webhook signature verification failed"
	case errors.Is(err, domain.ErrNoTextFound):
		return http.StatusUnprocessableEntity, "NO_TEXT_FOUND", "no readable text found in document"
	case errors.Is(err, domain.ErrTextExtraction):
		return http.StatusBadGateway, "TEXT_EXTRACTION_FAILED", "text extraction failed"
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return http.StatusBadRequest, "INVALID_FORMAT", "invalid export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrEmailDelivery):
		return http.StatusBadGateway, "EMAIL_DELIVERY_FAILED", "message could not be delivered"
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "VALIDATION_ERROR", "all fields are required"
	case errors.Is(err, domain.ErrInvalidInvoice):
		return http.StatusBadRequest, "INVALID_INVOICE", "invoice is incomplete"
	case errors.Is(err, invoice.ErrUnknownElement):
		return http.StatusBadRequest, "UNKNOWN_ELEMENT", "unknown element; allowed: logo, signature, watermark, terms, thankYou"
	case errors.Is(err, invoice.ErrInvalidCustomField):
		return http.StatusBadRequest, "INVALID_CUSTOM_FIELD", err.Error()
	case errors.Is(err, invoice.ErrDuplicateID):
		return http.StatusBadRequest, "DUPLICATE_ID", err.Error()
	case errors.Is(err, invoice.ErrCustomFieldMissing):
		return http.StatusNotFound, "CUSTOM_FIELD_NOT_FOUND", "custom field not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log := logger.WithRequestID(c.GetString("request_id"))
		log.Error().Err(err).Str("code", code).Msg("internal error")
	}
	RespondError(c, status, code, msg)
}

// extractUserID returns the authenticated user. Returns false if the auth
// context is missing (error response already written).
func extractUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
