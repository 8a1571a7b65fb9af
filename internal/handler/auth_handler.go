package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/logger"
	"invoicegen/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
}

// NewAuthHandler creates a new AuthHandler. passwordResetService may be nil.
func NewAuthHandler(authService service.AuthService, passwordResetService service.PasswordResetService) *AuthHandler {
	return &AuthHandler{authService: authService, passwordResetService: passwordResetService}
}

// Signup handles POST /api/v1/auth/signup
// @Summary Create an account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignupRequest true "Account details"
// @Success 201 {object} Response{data=SignupResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 409 {object} ErrorResponseBody "Email already registered"
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var input service.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	user, tokens, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"user": user, "tokens": tokens})
}

// Signin handles POST /api/v1/auth/signin
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} Response{data=TokenResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 401 {object} ErrorResponseBody "Invalid credentials"
// @Failure 403 {object} ErrorResponseBody "User inactive"
// @Router /auth/signin [post]
func (h *AuthHandler) Signin(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.Signin(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// RefreshToken handles POST /api/v1/auth/refresh
// @Summary Refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} Response{data=TokenResponse}
// @Failure 401 {object} ErrorResponseBody
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input service.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tokenPair)
}

// Signout handles POST /api/v1/auth/signout
// @Summary Sign out everywhere
// @Description Revokes every outstanding refresh token of the user.
// @Tags auth
// @Produce json
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 401 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /auth/signout [post]
func (h *AuthHandler) Signout(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	if err := h.authService.Signout(c.Request.Context(), userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "signed out"})
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} Response{data=domain.User}
// @Failure 401 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
// @Summary Request a password reset email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.ForgotPasswordInput true "Email"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	if h.passwordResetService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "password reset is not enabled")
		return
	}

	var input service.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.passwordResetService.ForgotPassword(c.Request.Context(), input); err != nil {
		log := logger.WithRequestID(c.GetString("request_id"))
		log.Warn().Err(err).Msg("forgot-password internal error")
	}

	RespondOK(c, gin.H{"message": "if an account with that email exists, a password reset link has been sent"})
}

// ResetPassword handles POST /api/v1/auth/reset-password
// @Summary Reset a password with an emailed token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.ResetPasswordInput true "Token and new password"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 401 {object} ErrorResponseBody "Invalid or used token"
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	if h.passwordResetService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "password reset is not enabled")
		return
	}

	var input service.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.passwordResetService.ResetPassword(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "password has been reset successfully"})
}
