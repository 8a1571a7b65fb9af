package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// UsageHandler handles export quota and PDF export endpoints.
type UsageHandler struct {
	usageService  service.UsageService
	exportService service.ExportService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService service.UsageService, exportService service.ExportService) *UsageHandler {
	return &UsageHandler{usageService: usageService, exportService: exportService}
}

// Get handles GET /api/v1/usage
// @Summary Get export usage
// @Tags usage
// @Produce json
// @Success 200 {object} Response{data=service.UsageSummary}
// @Security BearerAuth
// @Router /usage [get]
func (h *UsageHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	usage, err := h.usageService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, usage)
}

// ExportPDF handles POST /api/v1/exports/pdf
// @Summary Export the active invoice as PDF
// @Description Counts against the monthly allowance of the free plan. With object storage configured the PDF is archived and a link is returned; otherwise the document is the response body.
// @Tags usage
// @Produce json
// @Produce application/pdf
// @Success 200 {object} Response{data=service.PDFExport}
// @Failure 400 {object} ErrorResponseBody "Invoice is incomplete"
// @Failure 429 {object} ErrorResponseBody "Monthly limit reached"
// @Security BearerAuth
// @Router /exports/pdf [post]
func (h *UsageHandler) ExportPDF(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	out, err := h.exportService.ExportPDF(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	if out.Usage != nil && out.Usage.Remaining != nil {
		c.Header("X-Downloads-Remaining", strconv.Itoa(*out.Usage.Remaining))
	}
	if out.Content != nil {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
		c.Data(http.StatusOK, "application/pdf", out.Content)
		return
	}

	RespondOK(c, out)
}
