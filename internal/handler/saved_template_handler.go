package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// SavedTemplateHandler handles saved template snapshot endpoints.
type SavedTemplateHandler struct {
	savedTemplateService service.SavedTemplateService
}

// NewSavedTemplateHandler creates a new SavedTemplateHandler.
func NewSavedTemplateHandler(savedTemplateService service.SavedTemplateService) *SavedTemplateHandler {
	return &SavedTemplateHandler{savedTemplateService: savedTemplateService}
}

// Create handles POST /api/v1/saved-templates
// @Summary Save the active template state under a name
// @Tags saved-templates
// @Accept json
// @Produce json
// @Param body body SaveTemplateRequest true "Name"
// @Success 201 {object} Response{data=domain.SavedTemplate}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /saved-templates [post]
func (h *SavedTemplateHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.CreateSavedTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tpl, err := h.savedTemplateService.Create(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tpl)
}

// List handles GET /api/v1/saved-templates
// @Summary List saved templates
// @Tags saved-templates
// @Produce json
// @Success 200 {object} Response{data=[]domain.SavedTemplate}
// @Security BearerAuth
// @Router /saved-templates [get]
func (h *SavedTemplateHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	templates, err := h.savedTemplateService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, templates)
}

// Apply handles POST /api/v1/saved-templates/:id/apply
// @Summary Load a saved template into the workspace
// @Tags saved-templates
// @Produce json
// @Param id path string true "Saved template ID"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /saved-templates/{id}/apply [post]
func (h *SavedTemplateHandler) Apply(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.savedTemplateService.Apply(c.Request.Context(), userID, templateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Delete handles DELETE /api/v1/saved-templates/:id
// @Summary Delete a saved template
// @Tags saved-templates
// @Produce json
// @Param id path string true "Saved template ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /saved-templates/{id} [delete]
func (h *SavedTemplateHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.savedTemplateService.Delete(c.Request.Context(), userID, templateID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "saved template deleted"})
}
