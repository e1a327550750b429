package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// Legacy plain-string contract of the upload endpoint. Clients match on
// these exact strings, envelope migration is pending.
const (
	msgUploadSuccess    = "이미지 업로드 및 저장 성공!"
	msgUploadFailPrefix = "이미지 업로드 실패: "
)

type imageUploader interface {
	Upload(ctx context.Context, examNo, examineeNo int64, reason, name, contentType string, data []byte) (string, error)
}

type imagePersister interface {
	SaveExamineeImage(ctx context.Context, examNo, examineeNo int64, imageURL, imageReason string, claims *models.DirectorClaims) error
}

// UploadHandler pushes supporting imagery to the object store and persists
// the resulting URLs per examinee.
type UploadHandler struct {
	store   imageUploader
	service imagePersister
}

// NewUploadHandler builds a new handler.
func NewUploadHandler(store imageUploader, service imagePersister) *UploadHandler {
	return &UploadHandler{store: store, service: service}
}

// Upload handles POST /examinees/upload. Unlike the rest of the surface it
// answers with a bare string body.
func (h *UploadHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.String(http.StatusBadRequest, msgUploadFailPrefix+"multipart 요청이 아닙니다.")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.String(http.StatusBadRequest, msgUploadFailPrefix+"업로드할 파일이 없습니다.")
		return
	}

	imageReason := c.PostForm("imageReason")
	examNo, err1 := strconv.ParseInt(c.PostForm("examNo"), 10, 64)
	examineeNo, err2 := strconv.ParseInt(c.PostForm("examineeNo"), 10, 64)
	if imageReason == "" || err1 != nil || err2 != nil || examNo <= 0 || examineeNo <= 0 {
		c.String(http.StatusBadRequest, msgUploadFailPrefix+"요청 정보가 올바르지 않습니다.")
		return
	}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			c.String(http.StatusOK, msgUploadFailPrefix+appErrors.ErrIO.Message)
			return
		}
		data, err := io.ReadAll(file)
		_ = file.Close()
		if err != nil {
			c.String(http.StatusOK, msgUploadFailPrefix+appErrors.ErrIO.Message)
			return
		}

		url, err := h.store.Upload(c.Request.Context(), examNo, examineeNo, imageReason, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			c.String(http.StatusOK, msgUploadFailPrefix+appErrors.FromError(err).Message)
			return
		}

		if err := h.service.SaveExamineeImage(c.Request.Context(), examNo, examineeNo, url, imageReason, claims); err != nil {
			c.String(http.StatusOK, msgUploadFailPrefix+appErrors.FromError(err).Message)
			return
		}
	}

	c.String(http.StatusOK, msgUploadSuccess)
}
