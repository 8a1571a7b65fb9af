package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/logger"
	"invoicegen/internal/port"
)

// AssetUploadInput is the DTO for logo/signature uploads.
type AssetUploadInput struct {
	UserID uuid.UUID
	Kind   domain.AssetKind
	File   multipart.File
	Header *multipart.FileHeader
}

// Asset is an uploaded image and a time-limited link to it.
type Asset struct {
	Kind        domain.AssetKind `json:"kind"`
	Key         string           `json:"key"`
	ContentType string           `json:"content_type"`
	Size        int64            `json:"size"`
	URL         string           `json:"url"`
}

// AssetService defines the image asset contract.
type AssetService interface {
	Upload(ctx context.Context, input AssetUploadInput) (*Asset, error)
}

type assetService struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
}

// NewAssetService creates a new AssetService implementation.
func NewAssetService(storage port.ObjectStorage, cfg *config.S3Config) AssetService {
	return &assetService{storage: storage, cfg: cfg}
}

func (s *assetService) Upload(ctx context.Context, input AssetUploadInput) (*Asset, error) {
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("unknown asset kind %q: %w", input.Kind, domain.ErrUnsupportedFileType)
	}

	fileType, err := checkUpload(input.File, input.Header, s.cfg.MaxFileSizeMB)
	if err != nil {
		return nil, err
	}
	if fileType == domain.FileTypePDF {
		return nil, domain.ErrUnsupportedFileType
	}

	contentType := domain.AllowedFileTypes[fileType]
	key := fmt.Sprintf("users/%s/assets/%s/%s.%s", input.UserID, input.Kind, uuid.New(), fileType)

	log := logger.WithComponent("assets")
	log.Info().
		Str("user_id", input.UserID.String()).
		Str("kind", string(input.Kind)).
		Int64("size", input.Header.Size).
		Msg("uploading asset")

	err = s.storage.Put(ctx, port.StoredObject{
		Key:         key,
		ContentType: contentType,
		Body:        input.File,
		Size:        input.Header.Size,
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("asset upload failed")
		return nil, domain.ErrUploadFailed
	}

	url, err := s.storage.SignedURL(ctx, key, "")
	if err != nil {
		discard(ctx, s.storage, key)
		return nil, fmt.Errorf("presigning asset: %w", err)
	}

	return &Asset{
		Kind:        input.Kind,
		Key:         key,
		ContentType: contentType,
		Size:        input.Header.Size,
		URL:         url,
	}, nil
}

// checkUpload validates extension, size and sniffed content of an uploaded file
// and rewinds it for reading.
func checkUpload(file multipart.File, header *multipart.FileHeader, maxSizeMB int64) (domain.FileType, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}

	if maxSizeMB > 0 && header.Size > maxSizeMB*1024*1024 {
		return "", domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading file header: %w", err)
	}
	detected, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]
	if !ok || detected != fileType {
		return "", domain.ErrUnsupportedFileType
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seeking file: %w", err)
	}
	return fileType, nil
}
