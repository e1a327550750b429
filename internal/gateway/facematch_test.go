package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

func TestFaceMatchCompare(t *testing.T) {
	var gotName, gotNo string
	var gotExisting, gotNew []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotName = r.FormValue("examineeName")
		gotNo = r.FormValue("examineeNo")

		existing, _, err := r.FormFile("existingPhoto")
		require.NoError(t, err)
		gotExisting, _ = io.ReadAll(existing)
		fresh, _, err := r.FormFile("newPhoto")
		require.NoError(t, err)
		gotNew, _ = io.ReadAll(fresh)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"match":true,"confidence":0.97}`))
	}))
	defer server.Close()

	client := NewFaceMatchClient(server.URL, 5*time.Second, nil, nil)

	verdict, err := client.Compare(context.Background(),
		FaceImage{Name: "old.jpg", ContentType: "image/jpeg", Data: []byte("old")},
		FaceImage{Name: "new.jpg", ContentType: "image/jpeg", Data: []byte("new")},
		"김응시", "0012345")
	require.NoError(t, err)
	// Verdict passes through untouched.
	assert.Equal(t, `{"match":true,"confidence":0.97}`, verdict)
	assert.Equal(t, "김응시", gotName)
	assert.Equal(t, "0012345", gotNo)
	assert.Equal(t, []byte("old"), gotExisting)
	assert.Equal(t, []byte("new"), gotNew)
}

func TestFaceMatchCompareUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewFaceMatchClient(server.URL, 5*time.Second, nil, nil)

	_, err := client.Compare(context.Background(),
		FaceImage{Name: "old.jpg", Data: []byte("old")},
		FaceImage{Name: "new.jpg", Data: []byte("new")},
		"김응시", "100")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErr.Code)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestFaceMatchCompareUnreachable(t *testing.T) {
	client := NewFaceMatchClient("http://127.0.0.1:1", time.Second, nil, nil)

	_, err := client.Compare(context.Background(),
		FaceImage{Name: "old.jpg", Data: []byte("old")},
		FaceImage{Name: "new.jpg", Data: []byte("new")},
		"김응시", "100")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUpstream.Code, appErrors.FromError(err).Code)
}
