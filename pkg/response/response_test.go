package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

func TestOKEnvelopeShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "시험을 성공적으로 조회했습니다.", gin.H{"examNo": 10})

	require.Equal(t, http.StatusOK, w.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	// Success carries the literal string "success"; failures reuse the
	// field for the numeric HTTP code.
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(200), payload["code"])
	assert.Equal(t, "시험을 성공적으로 조회했습니다.", payload["message"])
	assert.NotNil(t, payload["data"])
}

func TestOKOmitsNilData(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	OK(c, "보상 신청이 되었습니다.", nil)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	_, hasData := payload["data"]
	assert.False(t, hasData)
}

func TestFailLegacyShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Fail(c, http.StatusBadRequest, appErrors.MessageAccessDenied)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, float64(http.StatusBadRequest), payload["status"])
	assert.Equal(t, appErrors.MessageAccessDenied, payload["message"])
	_, hasCode := payload["code"]
	assert.False(t, hasCode)
}

func TestErrorRendersTypedError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.InvalidArgument("존재하지 않는 시험입니다."))

	require.Equal(t, http.StatusBadRequest, w.Code)
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "존재하지 않는 시험입니다.", payload["message"])
}

func TestErrorMapsUnknownToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, assert.AnError)

	require.Equal(t, http.StatusInternalServerError, w.Code)
}
