package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/multicampussa/laams-director-api/internal/service"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// ObjectStoreClient uploads examinee imagery to a remote bucket over its
// HTTP API. Keys are deterministic per (examNo, examineeNo, reason, name),
// so re-uploading the same file overwrites the previous object.
type ObjectStoreClient struct {
	httpClient *resty.Client
	bucket     string
	publicURL  string
	metrics    *service.MetricsService
	logger     *zap.Logger
}

// NewObjectStoreClient builds a client against the store endpoint. When
// publicURL is empty, retrieval URLs are derived from the endpoint itself.
func NewObjectStoreClient(endpoint, bucket, publicURL string, timeout time.Duration, metrics *service.MetricsService, logger *zap.Logger) *ObjectStoreClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(endpoint, "/")).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	if publicURL == "" {
		publicURL = strings.TrimRight(endpoint, "/")
	} else {
		publicURL = strings.TrimRight(publicURL, "/")
	}

	return &ObjectStoreClient{
		httpClient: client,
		bucket:     bucket,
		publicURL:  publicURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// ObjectKey derives the deterministic storage key for an upload.
func ObjectKey(examNo, examineeNo int64, reason, name string) string {
	return fmt.Sprintf("exams/%d/examinees/%d/%s/%s", examNo, examineeNo, reason, name)
}

// Upload writes the bytes under the derived key and returns the public
// retrieval URL. A non-2xx response from the store is an upstream error.
func (c *ObjectStoreClient) Upload(ctx context.Context, examNo, examineeNo int64, reason, name, contentType string, data []byte) (string, error) {
	key := ObjectKey(examNo, examineeNo, reason, name)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put(fmt.Sprintf("/%s/%s", c.bucket, key))
	if err != nil {
		c.metrics.RecordUpstreamCall("object_store", err)
		c.logger.Error("object store upload failed", zap.String("key", key), zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "이미지 저장소 호출에 실패했습니다.")
	}
	if resp.IsError() {
		c.metrics.RecordUpstreamCall("object_store", appErrors.ErrUpstream)
		c.logger.Error("object store rejected upload",
			zap.String("key", key), zap.Int("status_code", resp.StatusCode()))
		return "", appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("이미지 저장소 오류 (status: %d)", resp.StatusCode()))
	}
	c.metrics.RecordUpstreamCall("object_store", nil)

	url := fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key)
	c.logger.Info("image uploaded", zap.String("key", key), zap.String("url", url))
	return url, nil
}
