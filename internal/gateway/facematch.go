package gateway

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/multicampussa/laams-director-api/internal/service"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// FaceImage is one image part of a comparison request, with the content
// type the client declared for it.
type FaceImage struct {
	Name        string
	ContentType string
	Data        []byte
}

// FaceMatchClient forwards two photos plus identity fields to the external
// matcher and returns its verdict verbatim. The verdict is an opaque string;
// interpreting it is the caller's business.
type FaceMatchClient struct {
	httpClient *resty.Client
	url        string
	metrics    *service.MetricsService
	logger     *zap.Logger
}

// NewFaceMatchClient builds a client for the configured matcher URL.
func NewFaceMatchClient(url string, timeout time.Duration, metrics *service.MetricsService, logger *zap.Logger) *FaceMatchClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().SetTimeout(timeout)
	return &FaceMatchClient{httpClient: client, url: url, metrics: metrics, logger: logger}
}

// Compare posts both images as multipart form-data together with the
// examinee identifiers. The examinee number stays a string on this path to
// tolerate leading zeros from legacy clients.
func (c *FaceMatchClient) Compare(ctx context.Context, existing, fresh FaceImage, examineeName, examineeNo string) (string, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetMultipartField("existingPhoto", existing.Name, existing.ContentType, bytes.NewReader(existing.Data)).
		SetMultipartField("newPhoto", fresh.Name, fresh.ContentType, bytes.NewReader(fresh.Data)).
		SetMultipartFormData(map[string]string{
			"examineeName": examineeName,
			"examineeNo":   examineeNo,
		}).
		Post(c.url)
	if err != nil {
		c.metrics.RecordUpstreamCall("face_match", err)
		c.logger.Error("face match call failed", zap.String("examineeNo", examineeNo), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "얼굴 비교 서비스 호출에 실패했습니다.")
	}
	if resp.IsError() {
		c.metrics.RecordUpstreamCall("face_match", appErrors.ErrUpstream)
		c.logger.Error("face match service rejected request",
			zap.String("examineeNo", examineeNo), zap.Int("status_code", resp.StatusCode()))
		return "", appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("얼굴 비교 서비스 오류 (status: %d)", resp.StatusCode()))
	}
	c.metrics.RecordUpstreamCall("face_match", nil)

	verdict := string(resp.Body())
	c.logger.Info("face match verdict received", zap.String("examineeNo", examineeNo))
	return verdict, nil
}
