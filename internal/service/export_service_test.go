package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/port"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func remaining(n int) *int { return &n }

func TestExportService_ExportPDF_Streams(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := &mocks.MockInvoiceRenderer{Content: []byte("%PDF-1.3 test")}
	svc := service.NewExportService(ws, usage, renderer, nil)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	usage.On("Consume", mock.Anything, userID).Return(&service.UsageSummary{Remaining: remaining(2)}, nil)

	out, err := svc.ExportPDF(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "INV-42.pdf", out.Filename)
	assert.Equal(t, []byte("%PDF-1.3 test"), out.Content)
	assert.Empty(t, out.URL)
	assert.Equal(t, 2, *out.Usage.Remaining)
}

func TestExportService_ExportPDF_QuotaExceeded(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := new(mocks.MockInvoiceRenderer)
	svc := service.NewExportService(ws, usage, renderer, nil)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	usage.On("Consume", mock.Anything, userID).Return(nil, domain.ErrQuotaExceeded)

	out, err := svc.ExportPDF(context.Background(), userID)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
}

func TestExportService_ExportPDF_RenderFailureDoesNotConsume(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := new(mocks.MockInvoiceRenderer)
	svc := service.NewExportService(ws, usage, renderer, nil)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(errors.New("font missing"))

	_, err := svc.ExportPDF(context.Background(), userID)

	assert.Error(t, err)
	usage.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
}

func TestExportService_ExportPDF_IncompleteInvoice(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := new(mocks.MockInvoiceRenderer)
	svc := service.NewExportService(ws, usage, renderer, nil)
	userID := uuid.New()
	view := completeView()
	view.State.InvoiceNumber = ""

	ws.On("Get", mock.Anything, userID).Return(view, nil)

	_, err := svc.ExportPDF(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrInvalidInvoice)
	renderer.AssertNotCalled(t, "Render")
	usage.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
}

func TestExportService_ExportPDF_ArchivesToStorage(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := &mocks.MockInvoiceRenderer{Content: []byte("%PDF-1.3 test")}
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(ws, usage, renderer, storage)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	usage.On("Consume", mock.Anything, userID).Return(&service.UsageSummary{}, nil)
	storage.On("Put", mock.Anything, mock.MatchedBy(func(obj port.StoredObject) bool {
		return obj.ContentType == "application/pdf" &&
			obj.Size == int64(len("%PDF-1.3 test")) &&
			obj.DownloadName == view.Data.InvoiceNumber+".pdf"
	})).Return(nil)
	storage.On("SignedURL", mock.Anything, mock.AnythingOfType("string"), view.Data.InvoiceNumber+".pdf").
		Return("https://signed.example/x.pdf", nil)

	out, err := svc.ExportPDF(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/x.pdf", out.URL)
	assert.Contains(t, out.Key, "users/"+userID.String()+"/exports/")
	assert.Nil(t, out.Content)
	storage.AssertExpectations(t)
}

func TestExportService_ExportPDF_UploadFailure(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := &mocks.MockInvoiceRenderer{Content: []byte("%PDF")}
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(ws, usage, renderer, storage)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	storage.On("Put", mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	_, err := svc.ExportPDF(context.Background(), userID)

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	usage.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
}

func TestExportService_ExportPDF_SigningFailureDoesNotConsume(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := &mocks.MockInvoiceRenderer{Content: []byte("%PDF")}
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(ws, usage, renderer, storage)
	userID := uuid.New()
	view := completeView()

	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	storage.On("Put", mock.Anything, mock.Anything).Return(nil)
	storage.On("SignedURL", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return("", errors.New("no creds"))
	storage.On("Remove", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	_, err := svc.ExportPDF(context.Background(), userID)

	assert.Error(t, err)
	usage.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything)
	storage.AssertCalled(t, "Remove", mock.Anything, mock.AnythingOfType("string"))
}

func TestExportService_ExportPDF_QuotaExceededRemovesArchive(t *testing.T) {
	ws := new(mocks.MockWorkspaceService)
	usage := new(mocks.MockUsageService)
	renderer := &mocks.MockInvoiceRenderer{Content: []byte("%PDF")}
	storage := new(mocks.MockObjectStorage)
	svc := service.NewExportService(ws, usage, renderer, storage)
	userID := uuid.New()
	view := completeView()

	var archived string
	ws.On("Get", mock.Anything, userID).Return(view, nil)
	renderer.On("Render", mock.Anything, view.Data).Return(nil)
	storage.On("Put", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		archived = args.Get(1).(port.StoredObject).Key
	}).Return(nil)
	storage.On("SignedURL", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return("https://signed.example/x.pdf", nil)
	usage.On("Consume", mock.Anything, userID).Return(nil, domain.ErrQuotaExceeded)
	storage.On("Remove", mock.Anything, mock.AnythingOfType("string")).Return(nil)

	out, err := svc.ExportPDF(context.Background(), userID)

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	storage.AssertCalled(t, "Remove", mock.Anything, archived)
}
