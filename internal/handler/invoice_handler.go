package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/export"
	"invoicegen/internal/service"
)

// InvoiceHandler handles saved invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Save handles POST /api/v1/invoices
// @Summary Save the active invoice
// @Description Validates the active template state and stores a snapshot of it and its derived data.
// @Tags invoices
// @Produce json
// @Success 201 {object} Response{data=domain.Invoice}
// @Failure 400 {object} ErrorResponseBody "Invoice is incomplete"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Save(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	inv, err := h.invoiceService.Save(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List saved invoices
// @Tags invoices
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice}
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get a saved invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=domain.Invoice}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete a saved invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), userID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// Load handles POST /api/v1/invoices/:id/load
// @Summary Load a saved invoice into the workspace
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=WorkspaceResponse}
// @Failure 404 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /invoices/{id}/load [post]
func (h *InvoiceHandler) Load(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	invoiceID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.invoiceService.Load(c.Request.Context(), userID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

// Export handles GET /api/v1/invoices/export
// @Summary Export invoice history
// @Tags invoices
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponseBody "Invalid format"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *InvoiceHandler) Export(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := h.invoiceService.Export(c.Request.Context(), userID, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoices", format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
