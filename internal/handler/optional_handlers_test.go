package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/domain"
	"invoicegen/internal/handler"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func multipartContext(t *testing.T, path, filename string, content []byte, fields map[string]string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, &body)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	return w, c
}

func TestOptionalHandlers_DisabledReturnNotFound(t *testing.T) {
	tests := []struct {
		name string
		call func(c *gin.Context)
	}{
		{"checkout", handler.NewPaymentHandler(nil).Checkout},
		{"confirm", handler.NewPaymentHandler(nil).Confirm},
		{"webhook", handler.NewPaymentHandler(nil).Webhook},
		{"asset upload", handler.NewAssetHandler(nil).Upload},
		{"ocr autofill", handler.NewOCRHandler(nil).Autofill},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := newJSONContext(http.MethodPost, "/", nil)
			authed(c)

			tt.call(c)

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "NOT_FOUND", decode(t, w).Error.Code)
		})
	}
}

func TestPaymentHandler_Checkout(t *testing.T) {
	svc := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/payments/checkout", gin.H{"plan": "lifetime"})
	userID := authed(c)
	svc.On("Checkout", mock.Anything, userID, service.CheckoutInput{Plan: domain.PlanLifetime}).
		Return(&service.CheckoutResult{SessionID: "cs_test_1"}, nil)

	h.Checkout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "cs_test_1", data["session_id"])
}

func TestPaymentHandler_Confirm_RequiresSessionID(t *testing.T) {
	svc := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(svc)

	w, c := newJSONContext(http.MethodGet, "/api/v1/payments/confirm", nil)
	authed(c)

	h.Confirm(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentHandler_Webhook_BadSignature(t *testing.T) {
	svc := new(mocks.MockPaymentService)
	h := handler.NewPaymentHandler(svc)

	payload := `{"type":"checkout.session.completed"}`
	w, c := newJSONContext(http.MethodPost, "/api/webhooks/stripe", payload)
	c.Request.Header.Set("Stripe-Signature", "t=1,v1=bad")
	svc.On("HandleWebhook", mock.Anything, []byte(payload), "t=1,v1=bad").Return(domain.ErrWebhookSignature)

	h.Webhook(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_SIGNATURE", decode(t, w).Error.Code)
}

func TestAssetHandler_Upload(t *testing.T) {
	svc := new(mocks.MockAssetService)
	h := handler.NewAssetHandler(svc)

	w, c := multipartContext(t, "/api/v1/assets", "logo.png", []byte("png-bytes"), map[string]string{"kind": "logo"})
	userID := authed(c)
	asset := &service.Asset{Kind: domain.AssetLogo, Key: "assets/" + userID.String() + "/logo.png"}
	svc.On("Upload", mock.Anything, mock.MatchedBy(func(in service.AssetUploadInput) bool {
		return in.UserID == userID && in.Kind == domain.AssetLogo && in.Header.Filename == "logo.png"
	})).Return(asset, nil)

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestAssetHandler_Upload_MissingFile(t *testing.T) {
	h := handler.NewAssetHandler(new(mocks.MockAssetService))

	w, c := newJSONContext(http.MethodPost, "/api/v1/assets", gin.H{"kind": "logo"})
	authed(c)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_FILE", decode(t, w).Error.Code)
}

func TestOCRHandler_Autofill_NoText(t *testing.T) {
	svc := new(mocks.MockOCRService)
	h := handler.NewOCRHandler(svc)

	w, c := multipartContext(t, "/api/v1/ocr/autofill?apply=true", "scan.pdf", []byte("%PDF-1.4"), nil)
	userID := authed(c)
	svc.On("Autofill", mock.Anything, mock.MatchedBy(func(in service.AutofillInput) bool {
		return in.UserID == userID && in.Apply
	})).Return(nil, domain.ErrNoTextFound)

	h.Autofill(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "NO_TEXT_FOUND", decode(t, w).Error.Code)
}

func TestSavedTemplateHandler_Apply(t *testing.T) {
	svc := new(mocks.MockSavedTemplateService)
	h := handler.NewSavedTemplateHandler(svc)

	templateID := uuid.New()
	w, c := newJSONContext(http.MethodPost, "/api/v1/saved-templates/"+templateID.String()+"/apply", nil)
	c.Params = gin.Params{{Key: "id", Value: templateID.String()}}
	userID := authed(c)
	svc.On("Apply", mock.Anything, userID, templateID).Return(sampleView(), nil)

	h.Apply(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSavedTemplateHandler_Create_RequiresName(t *testing.T) {
	svc := new(mocks.MockSavedTemplateService)
	h := handler.NewSavedTemplateHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/saved-templates", gin.H{})
	authed(c)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsHandler_Update(t *testing.T) {
	svc := new(mocks.MockSettingsService)
	h := handler.NewSettingsHandler(svc)

	currency := "EUR"
	w, c := newJSONContext(http.MethodPut, "/api/v1/settings", gin.H{"currency": currency})
	userID := authed(c)
	svc.On("Update", mock.Anything, userID, service.UpdateSettingsInput{Currency: &currency}).
		Return(&domain.UserSettings{UserID: userID, Currency: currency}, nil)

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "EUR", data["currency"])
}
