package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/ocr"
	"invoicegen/internal/port"
)

// AutofillInput is the DTO for OCR autofill requests.
type AutofillInput struct {
	UserID uuid.UUID
	File   multipart.File
	Header *multipart.FileHeader
	Apply  bool
}

// AutofillResult is the recognised text, the fields found in it and the patch
// they map to. Workspace is set when the patch was applied.
type AutofillResult struct {
	Text      string         `json:"text"`
	Fields    ocr.Fields     `json:"fields"`
	Patch     invoice.Patch  `json:"patch"`
	Workspace *WorkspaceView `json:"workspace,omitempty"`
}

// OCRService defines the document autofill contract.
type OCRService interface {
	Autofill(ctx context.Context, input AutofillInput) (*AutofillResult, error)
}

type ocrService struct {
	extractor     port.TextExtractor
	workspace     WorkspaceService
	maxFileSizeMB int64
}

// NewOCRService creates a new OCRService.
func NewOCRService(extractor port.TextExtractor, workspace WorkspaceService, maxFileSizeMB int64) OCRService {
	return &ocrService{extractor: extractor, workspace: workspace, maxFileSizeMB: maxFileSizeMB}
}

func (s *ocrService) Autofill(ctx context.Context, input AutofillInput) (*AutofillResult, error) {
	fileType, err := checkUpload(input.File, input.Header, s.maxFileSizeMB)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}

	text, err := s.extractor.ExtractText(ctx, data, domain.AllowedFileTypes[fileType])
	if err != nil {
		log := logger.WithComponent("ocr")
		log.Warn().Err(err).Str("user_id", input.UserID.String()).Str("file_type", string(fileType)).Msg("text extraction failed")
		return nil, err
	}

	fields := ocr.ExtractFields(text)
	result := &AutofillResult{Text: text, Fields: fields, Patch: fields.Patch()}

	if input.Apply && !result.Patch.IsEmpty() {
		view, err := s.workspace.UpdateTemplateState(ctx, input.UserID, result.Patch)
		if err != nil {
			return nil, err
		}
		result.Workspace = view
	}
	return result, nil
}
