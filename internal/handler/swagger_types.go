package handler

import (
	"time"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// SignupRequest represents the signup request body.
type SignupRequest struct {
	Email    string `json:"email" binding:"required" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
	FullName string `json:"full_name" binding:"required" example:"Ada Lovelace"`
}

// LoginRequest represents the signin request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SwitchTemplateRequest represents the switch/reset template request body.
type SwitchTemplateRequest struct {
	TemplateID string `json:"template_id" example:"legal"`
}

// SaveTemplateRequest represents the saved template request body.
type SaveTemplateRequest struct {
	Name string `json:"name" binding:"required" example:"Monthly retainer"`
}

// CheckoutRequest represents the checkout request body.
type CheckoutRequest struct {
	Plan domain.Plan `json:"plan" binding:"required" example:"lifetime"`
}

// ContactRequest represents the contact form body.
type ContactRequest struct {
	Name    string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email   string `json:"email" binding:"required" example:"ada@example.com"`
	Subject string `json:"subject" binding:"required" example:"Question about billing"`
	Message string `json:"message" binding:"required" example:"Can I switch plans mid-month?"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2025-01-15T10:30:00Z"`
}

// SignupResponse represents the signup response.
type SignupResponse struct {
	User   domain.User   `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// WorkspaceResponse represents the active template state and its derived invoice.
type WorkspaceResponse struct {
	ActiveTemplate string                `json:"active_template" example:"standard"`
	State          invoice.TemplateState `json:"state"`
	Data           invoice.InvoiceData   `json:"data"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
