package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/middleware"
	"github.com/multicampussa/laams-director-api/internal/models"
)

type examineeServiceMock struct {
	attendance    *dto.CheckAttendance
	document      *dto.CheckDocument
	documentCalls int
	compensation  bool
}

func (m *examineeServiceMock) CheckAttendance(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.CheckAttendance, error) {
	return m.attendance, nil
}

func (m *examineeServiceMock) CheckDocument(ctx context.Context, examNo, examineeNo int64, req dto.DocumentRequest, claims *models.DirectorClaims) (*dto.CheckDocument, error) {
	m.documentCalls++
	return m.document, nil
}

func (m *examineeServiceMock) ApplyCompensation(ctx context.Context, examNo, examineeNo int64, req dto.CompensationApplyRequest, claims *models.DirectorClaims) error {
	m.compensation = true
	return nil
}

func jsonContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextClaimsKey, &models.DirectorClaims{ID: "dir-7", Authority: "ROLE_DIRECTOR", CenterNo: 1})
	return c, w
}

func TestExamineeHandlerCheckAttendance(t *testing.T) {
	checked := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	mock := &examineeServiceMock{attendance: &dto.CheckAttendance{
		ExamineeNo: 100, ExamineeName: "김응시", Attendance: true, AttendanceTime: &checked,
	}}
	handler := NewExamineeHandler(mock)
	c, w := testContext(t, http.MethodPut, "/exams/10/examinees/100/attendance")
	c.Params = gin.Params{{Key: "examNo", Value: "10"}, {Key: "examineeNo", Value: "100"}}

	handler.CheckAttendance(c)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "응시자의 출석이 확인되었습니다.", payload["message"])
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, true, data["attendance"])
}

func TestExamineeHandlerCheckDocument(t *testing.T) {
	mock := &examineeServiceMock{document: &dto.CheckDocument{
		ExamineeNo: 100, ExamineeName: "김응시", Document: models.DocumentSubmitted,
	}}
	handler := NewExamineeHandler(mock)
	c, w := jsonContext(t, http.MethodPut, "/exams/10/examinees/100/document", `{"document":"서류_제출_완료"}`)
	c.Params = gin.Params{{Key: "examNo", Value: "10"}, {Key: "examineeNo", Value: "100"}}

	handler.CheckDocument(c)

	require.Equal(t, http.StatusOK, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "응시자의 서류 제출 여부가 확인되었습니다.", payload["message"])
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "서류_제출_완료", data["document"])
}

func TestExamineeHandlerCheckDocumentInvalidBody(t *testing.T) {
	mock := &examineeServiceMock{}
	handler := NewExamineeHandler(mock)
	c, w := jsonContext(t, http.MethodPut, "/exams/10/examinees/100/document", `not-json`)
	c.Params = gin.Params{{Key: "examNo", Value: "10"}, {Key: "examineeNo", Value: "100"}}

	handler.CheckDocument(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.documentCalls)
}

func TestExamineeHandlerApplyCompensation(t *testing.T) {
	mock := &examineeServiceMock{}
	handler := NewExamineeHandler(mock)
	c, w := jsonContext(t, http.MethodPost, "/exams/10/examinees/100/applyCompensation",
		`{"compensationType":"교통비","compensationReason":"시험 지연"}`)
	c.Params = gin.Params{{Key: "examNo", Value: "10"}, {Key: "examineeNo", Value: "100"}}

	handler.ApplyCompensation(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.compensation)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "보상 신청이 되었습니다.", payload["message"])
}
