package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/invoice"
	"invoicegen/internal/service"
)

// WorkspaceHandler handles the template workspace endpoints.
type WorkspaceHandler struct {
	workspaceService service.WorkspaceService
}

// NewWorkspaceHandler creates a new WorkspaceHandler.
func NewWorkspaceHandler(workspaceService service.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

// Templates handles GET /api/v1/templates
// @Summary List invoice templates
// @Tags templates
// @Produce json
// @Success 200 {object} Response{data=[]invoice.Preset}
// @Router /templates [get]
func (h *WorkspaceHandler) Templates(c *gin.Context) {
	RespondOK(c, invoice.Presets())
}

// Get handles GET /api/v1/workspace
// @Summary Get the active template state
// @Tags workspace
// @Produce json
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 401 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /workspace [get]
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// UpdateState handles PATCH /api/v1/workspace/state
// @Summary Merge fields into the active template state
// @Description Aggregates are recomputed; subtotal, tax amount and total cannot be set.
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body invoice.Patch true "Fields to replace"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /workspace/state [patch]
func (h *WorkspaceHandler) UpdateState(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var patch invoice.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.workspaceService.UpdateTemplateState(c.Request.Context(), userID, patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// ToggleElement handles POST /api/v1/workspace/toggle/:element
// @Summary Toggle a visibility element
// @Tags workspace
// @Produce json
// @Param element path string true "logo, signature, watermark, terms or thankYou"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 400 {object} ErrorResponseBody "Unknown element"
// @Security BearerAuth
// @Router /workspace/toggle/{element} [post]
func (h *WorkspaceHandler) ToggleElement(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.ToggleElement(c.Request.Context(), userID, invoice.Element(c.Param("element")))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// AddItem handles POST /api/v1/workspace/items
// @Summary Append a line item
// @Tags workspace
// @Produce json
// @Success 201 {object} Response{data=WorkspaceResponse}
// @Security BearerAuth
// @Router /workspace/items [post]
func (h *WorkspaceHandler) AddItem(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.AddInvoiceItem(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// UpdateItem handles PATCH /api/v1/workspace/items/:id
// @Summary Update a line item
// @Description Unknown ids leave the state unchanged.
// @Tags workspace
// @Accept json
// @Produce json
// @Param id path int true "Item ID"
// @Param body body invoice.ItemPatch true "Fields to replace"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /workspace/items/{id} [patch]
func (h *WorkspaceHandler) UpdateItem(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	var patch invoice.ItemPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.workspaceService.UpdateInvoiceItem(c.Request.Context(), userID, itemID, patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// RemoveItem handles DELETE /api/v1/workspace/items/:id
// @Summary Remove a line item
// @Tags workspace
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Security BearerAuth
// @Router /workspace/items/{id} [delete]
func (h *WorkspaceHandler) RemoveItem(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseItemID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.RemoveInvoiceItem(c.Request.Context(), userID, itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// AddCustomField handles POST /api/v1/workspace/custom-fields
// @Summary Add a custom field
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body service.AddCustomFieldInput true "Field definition"
// @Success 201 {object} Response{data=WorkspaceResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid field"
// @Security BearerAuth
// @Router /workspace/custom-fields [post]
func (h *WorkspaceHandler) AddCustomField(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.AddCustomFieldInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.workspaceService.AddCustomField(c.Request.Context(), userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// UpdateCustomField handles PATCH /api/v1/workspace/custom-fields/:id
// @Summary Update a custom field
// @Tags workspace
// @Accept json
// @Produce json
// @Param id path string true "Field ID"
// @Param body body invoice.CustomFieldPatch true "Fields to replace"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /workspace/custom-fields/{id} [patch]
func (h *WorkspaceHandler) UpdateCustomField(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var patch invoice.CustomFieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.workspaceService.UpdateCustomField(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// RemoveCustomField handles DELETE /api/v1/workspace/custom-fields/:id
// @Summary Remove a custom field
// @Tags workspace
// @Produce json
// @Param id path string true "Field ID"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Security BearerAuth
// @Router /workspace/custom-fields/{id} [delete]
func (h *WorkspaceHandler) RemoveCustomField(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	view, err := h.workspaceService.RemoveCustomField(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Switch handles POST /api/v1/workspace/switch
// @Summary Switch the active template
// @Description Unknown template ids fall back to standard.
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body SwitchTemplateRequest true "Template"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Security BearerAuth
// @Router /workspace/switch [post]
func (h *WorkspaceHandler) Switch(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req SwitchTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	view, err := h.workspaceService.SwitchTemplate(c.Request.Context(), userID, req.TemplateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Reset handles POST /api/v1/workspace/reset
// @Summary Reset a template to its default
// @Description An empty or missing template_id resets the active template.
// @Tags workspace
// @Accept json
// @Produce json
// @Param body body SwitchTemplateRequest false "Template"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Security BearerAuth
// @Router /workspace/reset [post]
func (h *WorkspaceHandler) Reset(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req SwitchTemplateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	view, err := h.workspaceService.ResetTemplate(c.Request.Context(), userID, req.TemplateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

func parseItemID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "item id must be an integer")
		return 0, false
	}
	return id, true
}
