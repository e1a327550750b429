package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/gateway"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
	"github.com/multicampussa/laams-director-api/pkg/response"
)

type faceComparer interface {
	Compare(ctx context.Context, existing, fresh gateway.FaceImage, examineeName, examineeNo string) (string, error)
}

// ComparisonHandler forwards a face-match check to the external matcher.
type ComparisonHandler struct {
	matcher faceComparer
}

// NewComparisonHandler builds a new handler.
func NewComparisonHandler(matcher faceComparer) *ComparisonHandler {
	return &ComparisonHandler{matcher: matcher}
}

func readFacePart(header *multipart.FileHeader) (gateway.FaceImage, error) {
	file, err := header.Open()
	if err != nil {
		return gateway.FaceImage{}, appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Status, appErrors.ErrIO.Message)
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(file)
	if err != nil {
		return gateway.FaceImage{}, appErrors.Wrap(err, appErrors.ErrIO.Code, appErrors.ErrIO.Status, appErrors.ErrIO.Message)
	}
	return gateway.FaceImage{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Compare handles POST /comparison. The examinee number stays a string on
// this path, leading zeros included.
func (h *ComparisonHandler) Compare(c *gin.Context) {
	existingHeader, err := c.FormFile("existingPhoto")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "기존 사진이 필요합니다."))
		return
	}
	newHeader, err := c.FormFile("newPhoto")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "촬영 사진이 필요합니다."))
		return
	}

	examineeName := c.PostForm("examineeName")
	examineeNo := c.PostForm("examineeNo")
	if examineeName == "" || examineeNo == "" {
		response.Error(c, appErrors.InvalidArgument("응시자 정보가 필요합니다."))
		return
	}

	existing, err := readFacePart(existingHeader)
	if err != nil {
		response.Error(c, err)
		return
	}
	fresh, err := readFacePart(newHeader)
	if err != nil {
		response.Error(c, err)
		return
	}

	verdict, err := h.matcher.Compare(c.Request.Context(), existing, fresh, examineeName, examineeNo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "얼굴 비교 결과를 성공적으로 조회했습니다.", verdict)
}
