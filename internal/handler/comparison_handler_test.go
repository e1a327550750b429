package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multicampussa/laams-director-api/internal/gateway"
)

type faceComparerMock struct {
	verdict    string
	err        error
	calls      int
	examineeNo string
	existing   gateway.FaceImage
	fresh      gateway.FaceImage
}

func (m *faceComparerMock) Compare(ctx context.Context, existing, fresh gateway.FaceImage, examineeName, examineeNo string) (string, error) {
	m.calls++
	m.examineeNo = examineeNo
	m.existing = existing
	m.fresh = fresh
	if m.err != nil {
		return "", m.err
	}
	return m.verdict, nil
}

type comparisonForm struct {
	fields map[string]string
	photos map[string][]byte
}

func comparisonContext(t *testing.T, form comparisonForm) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range form.fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for field, data := range form.photos {
		part, err := writer.CreateFormFile(field, field+".jpg")
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/comparison", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	return c, w
}

func TestComparisonHandlerCompare(t *testing.T) {
	mock := &faceComparerMock{verdict: `{"match":true,"confidence":0.97}`}
	handler := NewComparisonHandler(mock)
	c, w := comparisonContext(t, comparisonForm{
		fields: map[string]string{"examineeName": "김응시", "examineeNo": "0012345"},
		photos: map[string][]byte{"existingPhoto": []byte("old"), "newPhoto": []byte("new")},
	})

	handler.Compare(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mock.calls)
	// Leading zeros survive: the examinee number is never parsed on this path.
	assert.Equal(t, "0012345", mock.examineeNo)
	assert.Equal(t, []byte("old"), mock.existing.Data)
	assert.Equal(t, []byte("new"), mock.fresh.Data)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "얼굴 비교 결과를 성공적으로 조회했습니다.", payload["message"])
	assert.Equal(t, `{"match":true,"confidence":0.97}`, payload["data"])
}

func TestComparisonHandlerCompareMissingPhoto(t *testing.T) {
	mock := &faceComparerMock{}
	handler := NewComparisonHandler(mock)
	c, w := comparisonContext(t, comparisonForm{
		fields: map[string]string{"examineeName": "김응시", "examineeNo": "0012345"},
		photos: map[string][]byte{"existingPhoto": []byte("old")},
	})

	handler.Compare(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.calls)
}

func TestComparisonHandlerCompareMissingIdentity(t *testing.T) {
	mock := &faceComparerMock{}
	handler := NewComparisonHandler(mock)
	c, w := comparisonContext(t, comparisonForm{
		photos: map[string][]byte{"existingPhoto": []byte("old"), "newPhoto": []byte("new")},
	})

	handler.Compare(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, mock.calls)
	payload := decodeEnvelope(t, w.Body.Bytes())
	assert.Equal(t, "응시자 정보가 필요합니다.", payload["message"])
}
