package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
	"github.com/multicampussa/laams-director-api/pkg/response"
)

type examineeService interface {
	CheckAttendance(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.CheckAttendance, error)
	CheckDocument(ctx context.Context, examNo, examineeNo int64, req dto.DocumentRequest, claims *models.DirectorClaims) (*dto.CheckDocument, error)
	ApplyCompensation(ctx context.Context, examNo, examineeNo int64, req dto.CompensationApplyRequest, claims *models.DirectorClaims) error
}

// ExamineeHandler mutates per-candidate enrollment state.
type ExamineeHandler struct {
	service examineeService
}

// NewExamineeHandler builds a new handler.
func NewExamineeHandler(service examineeService) *ExamineeHandler {
	return &ExamineeHandler{service: service}
}

// CheckAttendance handles PUT /exams/:examNo/examinees/:examineeNo/attendance.
// The operation is idempotent: a repeat call returns the stored record.
func (h *ExamineeHandler) CheckAttendance(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}
	examineeNo, err := pathInt64(c, "examineeNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	record, err := h.service.CheckAttendance(c.Request.Context(), examNo, examineeNo, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "응시자의 출석이 확인되었습니다.", record)
}

// CheckDocument handles PUT /exams/:examNo/examinees/:examineeNo/document.
func (h *ExamineeHandler) CheckDocument(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}
	examineeNo, err := pathInt64(c, "examineeNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "올바르지 않은 서류 상태입니다."))
		return
	}

	record, err := h.service.CheckDocument(c.Request.Context(), examNo, examineeNo, req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "응시자의 서류 제출 여부가 확인되었습니다.", record)
}

// ApplyCompensation handles POST /exams/:examNo/examinees/:examineeNo/applyCompensation.
func (h *ExamineeHandler) ApplyCompensation(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}
	examineeNo, err := pathInt64(c, "examineeNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CompensationApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "보상 신청 내용이 올바르지 않습니다."))
		return
	}

	if err := h.service.ApplyCompensation(c.Request.Context(), examNo, examineeNo, req, claims); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "보상 신청이 되었습니다.", nil)
}
