package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// AssetHandler handles logo and signature uploads.
type AssetHandler struct {
	assetService service.AssetService
}

// NewAssetHandler creates a new AssetHandler. assetService is nil when object
// storage is not configured.
func NewAssetHandler(assetService service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// Upload handles POST /api/v1/assets
// @Summary Upload a logo or signature image
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image (JPG or PNG)"
// @Param kind formData string true "logo or signature"
// @Success 201 {object} Response{data=service.Asset}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /assets [post]
func (h *AssetHandler) Upload(c *gin.Context) {
	if h.assetService == nil {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "asset uploads are not enabled")
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

	asset, err := h.assetService.Upload(c.Request.Context(), service.AssetUploadInput{
		UserID: userID,
		Kind:   domain.AssetKind(c.PostForm("kind")),
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, asset)
}
