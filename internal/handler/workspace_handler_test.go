package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/handler"
	"invoicegen/internal/invoice"
	"invoicegen/internal/service"
	"invoicegen/mocks"
)

func sampleView() *service.WorkspaceView {
	ws := invoice.NewWorkspace(invoice.TemplateStandard)
	return &service.WorkspaceView{
		ActiveTemplate: ws.ActiveID,
		State:          ws.Active(),
		Data:           ws.Data(),
	}
}

func TestWorkspaceHandler_Templates(t *testing.T) {
	h := handler.NewWorkspaceHandler(new(mocks.MockWorkspaceService))

	w, c := newJSONContext(http.MethodGet, "/api/v1/templates", nil)
	h.Templates(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data, ok := decode(t, w).Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, data, len(invoice.Presets()))
}

func TestWorkspaceHandler_Get(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodGet, "/api/v1/workspace", nil)
	userID := authed(c)
	svc.On("Get", mock.Anything, userID).Return(sampleView(), nil)

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, invoice.TemplateStandard, data["active_template"])
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler_Get_Unauthenticated(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodGet, "/api/v1/workspace", nil)
	h.Get(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestWorkspaceHandler_ToggleElement_Unknown(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/workspace/toggle/banner", nil)
	c.Params = gin.Params{{Key: "element", Value: "banner"}}
	userID := authed(c)
	svc.On("ToggleElement", mock.Anything, userID, invoice.Element("banner")).Return(nil, invoice.ErrUnknownElement)

	h.ToggleElement(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNKNOWN_ELEMENT", decode(t, w).Error.Code)
}

func TestWorkspaceHandler_AddItem(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/workspace/items", nil)
	userID := authed(c)
	svc.On("AddInvoiceItem", mock.Anything, userID).Return(sampleView(), nil)

	h.AddItem(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler_UpdateItem_BadID(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodPatch, "/api/v1/workspace/items/abc", gin.H{"quantity": 2})
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	authed(c)

	h.UpdateItem(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "UpdateInvoiceItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkspaceHandler_RemoveItem(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodDelete, "/api/v1/workspace/items/3", nil)
	c.Params = gin.Params{{Key: "id", Value: "3"}}
	userID := authed(c)
	svc.On("RemoveInvoiceItem", mock.Anything, userID, 3).Return(sampleView(), nil)

	h.RemoveItem(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler_RemoveCustomField_Missing(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodDelete, "/api/v1/workspace/custom-fields/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	userID := authed(c)
	svc.On("RemoveCustomField", mock.Anything, userID, "nope").Return(nil, invoice.ErrCustomFieldMissing)

	h.RemoveCustomField(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CUSTOM_FIELD_NOT_FOUND", decode(t, w).Error.Code)
}

func TestWorkspaceHandler_Reset_WithoutBody(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/workspace/reset", nil)
	userID := authed(c)
	svc.On("ResetTemplate", mock.Anything, userID, "").Return(sampleView(), nil)

	h.Reset(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler_Switch(t *testing.T) {
	svc := new(mocks.MockWorkspaceService)
	h := handler.NewWorkspaceHandler(svc)

	w, c := newJSONContext(http.MethodPost, "/api/v1/workspace/switch", gin.H{"template_id": "legal"})
	userID := authed(c)
	svc.On("SwitchTemplate", mock.Anything, userID, "legal").Return(sampleView(), nil)

	h.Switch(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestWorkspaceHandler_UpdateState_DuplicateItemIDs(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	h := handler.NewWorkspaceHandler(service.NewWorkspaceService(repo, nil, nil))

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"id": 4, "description": "a", "quantity": 1, "rate": 10, "visible": true},
			{"id": 4, "description": "b", "quantity": 1, "rate": 20, "visible": true},
		},
	}
	w, c := newJSONContext(http.MethodPatch, "/api/v1/workspace/state", body)
	userID := authed(c)
	repo.On("Get", mock.Anything, userID).Return(invoice.NewWorkspace(invoice.TemplateStandard), nil)

	h.UpdateState(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "DUPLICATE_ID", decode(t, w).Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkspaceHandler_UpdateState_MalformedCustomField(t *testing.T) {
	repo := new(mocks.MockWorkspaceRepo)
	h := handler.NewWorkspaceHandler(service.NewWorkspaceService(repo, nil, nil))

	body := map[string]interface{}{
		"custom_fields": []map[string]interface{}{
			{"id": "ref", "type": "text", "label": "Ref", "options": []string{"x"}},
		},
	}
	w, c := newJSONContext(http.MethodPatch, "/api/v1/workspace/state", body)
	userID := authed(c)
	repo.On("Get", mock.Anything, userID).Return(invoice.NewWorkspace(invoice.TemplateStandard), nil)

	h.UpdateState(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CUSTOM_FIELD", decode(t, w).Error.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}
