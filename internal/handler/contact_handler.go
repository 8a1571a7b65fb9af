package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// ContactHandler handles the public contact form.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Send handles POST /api/contact
// @Summary Send a contact form message
// @Tags contact
// @Accept json
// @Produce json
// @Param body body ContactRequest true "Message"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody "Missing fields"
// @Failure 502 {object} ErrorResponseBody "Delivery failed"
// @Router /contact [post]
func (h *ContactHandler) Send(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	if err := h.contactService.Send(c.Request.Context(), input); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "message sent"})
}
