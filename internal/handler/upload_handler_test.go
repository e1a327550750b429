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

	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

type imageUploaderMock struct {
	url    string
	err    error
	calls  int
	bytes  []byte
	reason string
}

func (m *imageUploaderMock) Upload(ctx context.Context, examNo, examineeNo int64, reason, name, contentType string, data []byte) (string, error) {
	m.calls++
	m.bytes = data
	m.reason = reason
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type imagePersisterMock struct {
	url    string
	reason string
	err    error
	calls  int
}

func (m *imagePersisterMock) SaveExamineeImage(ctx context.Context, examNo, examineeNo int64, imageURL, imageReason string, claims *models.DirectorClaims) error {
	m.calls++
	m.url = imageURL
	m.reason = imageReason
	return m.err
}

type uploadForm struct {
	fields map[string]string
	files  map[string][]byte
}

func multipartContext(t *testing.T, form uploadForm) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range form.fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for name, data := range form.files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(http.MethodPost, "/examinees/upload", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	c.Request = req
	c.Set("directorClaims", &models.DirectorClaims{ID: "dir-7", Authority: "ROLE_DIRECTOR", CenterNo: 1})
	return c, w
}

func TestUploadHandlerSuccess(t *testing.T) {
	store := &imageUploaderMock{url: "https://img.example.com/laams-images/a.jpg"}
	persister := &imagePersisterMock{}
	handler := NewUploadHandler(store, persister)
	c, w := multipartContext(t, uploadForm{
		fields: map[string]string{"imageReason": "신분증_불일치", "examNo": "10", "examineeNo": "100"},
		files:  map[string][]byte{"a.jpg": []byte("jpeg-bytes")},
	})

	handler.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "이미지 업로드 및 저장 성공!", w.Body.String())
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, []byte("jpeg-bytes"), store.bytes)
	assert.Equal(t, 1, persister.calls)
	assert.Equal(t, store.url, persister.url)
	assert.Equal(t, "신분증_불일치", persister.reason)
}

func TestUploadHandlerNoFiles(t *testing.T) {
	store := &imageUploaderMock{}
	handler := NewUploadHandler(store, &imagePersisterMock{})
	c, w := multipartContext(t, uploadForm{
		fields: map[string]string{"imageReason": "신분증_불일치", "examNo": "10", "examineeNo": "100"},
	})

	handler.Upload(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "이미지 업로드 실패: ")
	assert.Equal(t, 0, store.calls)
}

func TestUploadHandlerMissingFields(t *testing.T) {
	store := &imageUploaderMock{}
	handler := NewUploadHandler(store, &imagePersisterMock{})
	c, w := multipartContext(t, uploadForm{
		fields: map[string]string{"examNo": "10"},
		files:  map[string][]byte{"a.jpg": []byte("jpeg-bytes")},
	})

	handler.Upload(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "이미지 업로드 실패: ")
	assert.Equal(t, 0, store.calls)
}

func TestUploadHandlerStoreFailure(t *testing.T) {
	store := &imageUploaderMock{err: appErrors.Clone(appErrors.ErrUpstream, "이미지 저장소 오류 (status: 503)")}
	persister := &imagePersisterMock{}
	handler := NewUploadHandler(store, persister)
	c, w := multipartContext(t, uploadForm{
		fields: map[string]string{"imageReason": "신분증_불일치", "examNo": "10", "examineeNo": "100"},
		files:  map[string][]byte{"a.jpg": []byte("jpeg-bytes")},
	})

	handler.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "이미지 업로드 실패: 이미지 저장소 오류 (status: 503)", w.Body.String())
	assert.Equal(t, 0, persister.calls)
}

func TestUploadHandlerMultipleFiles(t *testing.T) {
	store := &imageUploaderMock{url: "https://img.example.com/laams-images/a.jpg"}
	persister := &imagePersisterMock{}
	handler := NewUploadHandler(store, persister)
	c, w := multipartContext(t, uploadForm{
		fields: map[string]string{"imageReason": "신분증_불일치", "examNo": "10", "examineeNo": "100"},
		files: map[string][]byte{
			"a.jpg": []byte("first"),
			"b.jpg": []byte("second"),
		},
	})

	handler.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "이미지 업로드 및 저장 성공!", w.Body.String())
	assert.Equal(t, 2, store.calls)
	assert.Equal(t, 2, persister.calls)
}
