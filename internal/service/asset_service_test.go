package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/config"
	"invoicegen/internal/domain"
	"invoicegen/internal/port"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func assetConfig() *config.S3Config {
	return &config.S3Config{Bucket: "assets", MaxFileSizeMB: 1, PresignExpiry: 600}
}

func TestAssetService_Upload_Logo(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewAssetService(storage, assetConfig())
	userID := uuid.New()
	file, header := upload("logo.png", pngBytes)

	storage.On("Put", mock.Anything, mock.MatchedBy(func(obj port.StoredObject) bool {
		return obj.ContentType == "image/png" && obj.Size == int64(len(pngBytes)) && obj.DownloadName == ""
	})).Return(nil)
	storage.On("SignedURL", mock.Anything, mock.AnythingOfType("string"), "").
		Return("https://signed.example/logo.png", nil)

	asset, err := svc.Upload(context.Background(), service.AssetUploadInput{
		UserID: userID, Kind: domain.AssetLogo, File: file, Header: header,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.AssetLogo, asset.Kind)
	assert.Equal(t, "https://signed.example/logo.png", asset.URL)
	assert.Contains(t, asset.Key, "users/"+userID.String()+"/assets/logo/")
	assert.Contains(t, asset.Key, ".png")
	storage.AssertExpectations(t)
}

func TestAssetService_Upload_Rejections(t *testing.T) {
	big := make([]byte, 2*1024*1024)
	copy(big, pngBytes)

	tests := []struct {
		name    string
		kind    domain.AssetKind
		file    string
		data    []byte
		wantErr error
	}{
		{"unknown kind", "banner", "logo.png", pngBytes, domain.ErrUnsupportedFileType},
		{"bad extension", domain.AssetLogo, "logo.gif", pngBytes, domain.ErrUnsupportedFileType},
		{"content mismatch", domain.AssetLogo, "logo.jpg", pngBytes, domain.ErrUnsupportedFileType},
		{"pdf not an image", domain.AssetSignature, "sig.pdf", pdfBytes, domain.ErrUnsupportedFileType},
		{"too large", domain.AssetLogo, "logo.png", big, domain.ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := new(mocks.MockObjectStorage)
			svc := service.NewAssetService(storage, assetConfig())
			file, header := upload(tt.file, tt.data)

			_, err := svc.Upload(context.Background(), service.AssetUploadInput{
				UserID: uuid.New(), Kind: tt.kind, File: file, Header: header,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			storage.AssertNotCalled(t, "Put")
		})
	}
}

func TestAssetService_Upload_StorageFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewAssetService(storage, assetConfig())
	file, header := upload("logo.png", pngBytes)

	storage.On("Put", mock.Anything, mock.Anything).Return(errors.New("access denied"))

	_, err := svc.Upload(context.Background(), service.AssetUploadInput{
		UserID: uuid.New(), Kind: domain.AssetLogo, File: file, Header: header,
	})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestAssetService_Upload_RemovesObjectWhenSigningFails(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := service.NewAssetService(storage, assetConfig())
	file, header := upload("logo.png", pngBytes)

	storage.On("Put", mock.Anything, mock.Anything).Return(nil)
	storage.On("SignedURL", mock.Anything, mock.AnythingOfType("string"), "").Return("", errors.New("clock skew"))
	storage.On("Remove", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.Upload(context.Background(), service.AssetUploadInput{
		UserID: uuid.New(), Kind: domain.AssetLogo, File: file, Header: header,
	})

	assert.Error(t, err)
	storage.AssertCalled(t, "Remove", mock.Anything, mock.AnythingOfType("string"))
}
