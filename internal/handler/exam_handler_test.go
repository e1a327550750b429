package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/middleware"
	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

type examServiceMock struct {
	info    *dto.ExamInformation
	infoErr error
	called  bool
}

func (m *examServiceMock) ExamInformation(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamInformation, error) {
	m.called = true
	if m.infoErr != nil {
		return nil, m.infoErr
	}
	return m.info, nil
}

func (m *examServiceMock) ExamExamineeList(ctx context.Context, examNo int64, claims *models.DirectorClaims) ([]dto.ExamExamineeItem, error) {
	m.called = true
	return []dto.ExamExamineeItem{{ExamineeNo: 100, ExamineeName: "김응시", Document: models.DocumentAwaiting}}, nil
}

func (m *examServiceMock) ExamExaminee(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.ExamExamineeDetail, error) {
	m.called = true
	return &dto.ExamExamineeDetail{ExamineeNo: examineeNo, Document: models.DocumentAwaiting}, nil
}

func (m *examServiceMock) ExamStatus(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamStatus, error) {
	m.called = true
	return &dto.ExamStatus{ExamNo: examNo, TotalExaminee: 30}, nil
}

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, nil)
	require.NoError(t, err)
	c.Request = req
	c.Set(middleware.ContextClaimsKey, &models.DirectorClaims{ID: "dir-7", Authority: "ROLE_DIRECTOR", CenterNo: 1})
	return c, w
}

func decodeEnvelope(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestExamHandlerInformation(t *testing.T) {
	mock := &examServiceMock{info: &dto.ExamInformation{ExamNo: 10, Name: "정기 시험", Capacity: 2}}
	handler := NewExamHandler(mock)
	c, w := testContext(t, http.MethodGet, "/exams/10")
	c.Params = gin.Params{{Key: "examNo", Value: "10"}}

	handler.Information(c)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, float64(200), payload["code"])
	assert.Equal(t, "시험 상세정보를 성공적으로 조회했습니다.", payload["message"])
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["examNo"])
}

func TestExamHandlerInformationBadPathVariable(t *testing.T) {
	mock := &examServiceMock{}
	handler := NewExamHandler(mock)
	c, w := testContext(t, http.MethodGet, "/exams/abc")
	c.Params = gin.Params{{Key: "examNo", Value: "abc"}}

	handler.Information(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mock.called)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, float64(http.StatusBadRequest), payload["status"])
	assert.Equal(t, msgBadPathVariable, payload["message"])
}

func TestExamHandlerInformationServiceError(t *testing.T) {
	mock := &examServiceMock{infoErr: appErrors.InvalidArgument("담당 센터의 시험이 아닙니다.")}
	handler := NewExamHandler(mock)
	c, w := testContext(t, http.MethodGet, "/exams/10")
	c.Params = gin.Params{{Key: "examNo", Value: "10"}}

	handler.Information(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "담당 센터의 시험이 아닙니다.", payload["message"])
}

func TestExamHandlerStatus(t *testing.T) {
	mock := &examServiceMock{}
	handler := NewExamHandler(mock)
	c, w := testContext(t, http.MethodGet, "/exams/10/status")
	c.Params = gin.Params{{Key: "examNo", Value: "10"}}

	handler.Status(c)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "시험 응시자의 현황을 성공적으로 조회했습니다.", payload["message"])
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, float64(30), data["totalExaminee"])
}
