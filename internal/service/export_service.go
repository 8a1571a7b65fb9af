package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/export"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

// PDFExport is a rendered invoice. When storage is configured the document is
// archived and URL points at it; otherwise Content holds the bytes.
type PDFExport struct {
	Filename string        `json:"filename"`
	Key      string        `json:"key,omitempty"`
	URL      string        `json:"url,omitempty"`
	Usage    *UsageSummary `json:"usage"`
	Content  []byte        `json:"-"`
}

// ExportService defines the gated PDF export contract.
type ExportService interface {
	ExportPDF(ctx context.Context, userID uuid.UUID) (*PDFExport, error)
}

type exportService struct {
	workspace WorkspaceService
	usage     UsageService
	renderer  port.InvoiceRenderer
	storage   port.ObjectStorage
}

// NewExportService creates a new ExportService. storage may be nil.
func NewExportService(
	workspace WorkspaceService,
	usage UsageService,
	renderer port.InvoiceRenderer,
	storage port.ObjectStorage,
) ExportService {
	return &exportService{
		workspace: workspace,
		usage:     usage,
		renderer:  renderer,
		storage:   storage,
	}
}

// ExportPDF renders the active record. The quota is consumed only once the
// document is ready to hand over: after rendering when streaming, or after the
// archive upload and link signing when storage is configured. A failed charge
// removes the archived object.
func (s *exportService) ExportPDF(ctx context.Context, userID uuid.UUID) (*PDFExport, error) {
	view, err := s.workspace.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validateState(view.State); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, view.Data); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}

	out := &PDFExport{
		Filename: export.SanitizeFilename(view.Data.InvoiceNumber) + ".pdf",
	}
	if out.Filename == ".pdf" {
		out.Filename = "invoice.pdf"
	}

	if s.storage == nil {
		usage, err := s.usage.Consume(ctx, userID)
		if err != nil {
			return nil, err
		}
		out.Content = buf.Bytes()
		out.Usage = usage
		return out, nil
	}

	key := fmt.Sprintf("users/%s/exports/%s.pdf", userID, uuid.New())
	if err := s.storage.Put(ctx, port.StoredObject{
		Key:          key,
		ContentType:  domain.AllowedFileTypes[domain.FileTypePDF],
		Body:         &buf,
		Size:         int64(buf.Len()),
		DownloadName: out.Filename,
	}); err != nil {
		log := logger.WithComponent("export")
		log.Error().Err(err).Str("user_id", userID.String()).Msg("pdf archive upload failed")
		return nil, domain.ErrUploadFailed
	}

	url, err := s.storage.SignedURL(ctx, key, out.Filename)
	if err != nil {
		discard(ctx, s.storage, key)
		return nil, fmt.Errorf("presigning pdf: %w", err)
	}

	usage, err := s.usage.Consume(ctx, userID)
	if err != nil {
		discard(ctx, s.storage, key)
		return nil, err
	}
	out.Key = key
	out.URL = url
	out.Usage = usage
	return out, nil
}

// discard removes an archived object that will not be handed to the caller.
func discard(ctx context.Context, storage port.ObjectStorage, key string) {
	if err := storage.Remove(ctx, key); err != nil {
		log := logger.WithComponent("storage")
		log.Warn().Err(err).Str("key", key).Msg("failed to remove orphaned object")
	}
}
