package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"invoicegen/internal/handler"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(method, path string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, reader)
	if reader != nil {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return w, c
}

func authed(c *gin.Context) uuid.UUID {
	userID := uuid.New()
	c.Set("user_id", userID)
	return userID
}

func decode(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
