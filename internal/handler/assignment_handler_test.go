package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

type assignmentServiceMock struct {
	err    error
	called bool
	examNo int64
}

func (m *assignmentServiceMock) RequestExamAssignment(ctx context.Context, examNo int64, claims *models.DirectorClaims) error {
	m.called = true
	m.examNo = examNo
	return m.err
}

func TestAssignmentHandlerRequest(t *testing.T) {
	mock := &assignmentServiceMock{}
	handler := NewAssignmentHandler(mock)
	c, w := jsonContext(t, http.MethodPost, "/exams/request", `{"examNo":10}`)

	handler.Request(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mock.called)
	assert.Equal(t, int64(10), mock.examNo)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "감독관의 시험 배정 요청이 정상적으로 처리 되었습니다.", payload["message"])
}

func TestAssignmentHandlerRequestMissingExamNo(t *testing.T) {
	mock := &assignmentServiceMock{}
	handler := NewAssignmentHandler(mock)
	c, w := jsonContext(t, http.MethodPost, "/exams/request", `{}`)

	handler.Request(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mock.called)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "시험 번호가 필요합니다.", payload["message"])
}

func TestAssignmentHandlerRequestCapacityFull(t *testing.T) {
	mock := &assignmentServiceMock{err: appErrors.InvalidArgument("시험 배정 인원이 가득 찼습니다.")}
	handler := NewAssignmentHandler(mock)
	c, w := jsonContext(t, http.MethodPost, "/exams/request", `{"examNo":10}`)

	handler.Request(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "시험 배정 인원이 가득 찼습니다.", payload["message"])
}
