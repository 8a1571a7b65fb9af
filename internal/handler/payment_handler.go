package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

const maxWebhookBody = 64 << 10

// PaymentHandler handles checkout and payment webhook endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler. paymentService is nil when
// payments are not configured.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Checkout handles POST /api/v1/payments/checkout
// @Summary Start a plan checkout
// @Tags payments
// @Accept json
// @Produce json
// @Param body body CheckoutRequest true "Plan"
// @Success 200 {object} Response{data=service.CheckoutResult}
// @Failure 400 {object} ErrorResponseBody "Invalid plan"
// @Failure 404 {object} ErrorResponseBody "Payments not enabled"
// @Security BearerAuth
// @Router /payments/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.paymentService.Checkout(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Confirm handles GET /api/v1/payments/confirm
// @Summary Confirm a completed checkout
// @Description Polled from the checkout return page; activates the plan once the session is paid.
// @Tags payments
// @Produce json
// @Param session_id query string true "Checkout session ID"
// @Success 200 {object} Response{data=domain.User}
// @Failure 402 {object} ErrorResponseBody "Payment not completed"
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /payments/confirm [get]
func (h *PaymentHandler) Confirm(c *gin.Context) {
	if !h.enabled(c) {
		return
	}
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "session_id query parameter is required")
		return
	}

	user, err := h.paymentService.Confirm(c.Request.Context(), userID, sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Webhook handles POST /api/webhooks/stripe
// @Summary Payment provider webhook
// @Tags payments
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Webhook signature"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid signature"
// @Router /webhooks/stripe [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	if !h.enabled(c) {
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable body")
		return
	}

	if err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "received"})
}

func (h *PaymentHandler) enabled(c *gin.Context) bool {
	if h.paymentService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "payments are not enabled")
		return false
	}
	return true
}
