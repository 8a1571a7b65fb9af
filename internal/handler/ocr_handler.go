package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/service"
)

// OCRHandler handles document autofill.
type OCRHandler struct {
	ocrService service.OCRService
}

// NewOCRHandler creates a new OCRHandler. ocrService is nil when no text
// extraction backend is configured.
func NewOCRHandler(ocrService service.OCRService) *OCRHandler {
	return &OCRHandler{ocrService: ocrService}
}

// Autofill handles POST /api/v1/ocr/autofill
// @Summary Extract invoice fields from a document
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document (PDF, JPG or PNG)"
// @Param apply query bool false "Apply the extracted fields to the active template"
// @Success 200 {object} Response{data=service.AutofillResult}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 404 {object} ErrorResponseBody "OCR not enabled"
// @Failure 422 {object} ErrorResponseBody "No text found"
// @Security BearerAuth
// @Router /ocr/autofill [post]
func (h *OCRHandler) Autofill(c *gin.Context) {
	if h.ocrService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "ocr is not enabled")
		return
	}

	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.ocrService.Autofill(c.Request.Context(), service.AutofillInput{
		UserID: userID,
		File:   file,
		Header: header,
		Apply:  c.Query("apply") == "true",
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
