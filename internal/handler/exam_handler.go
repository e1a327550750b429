package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
	"github.com/multicampussa/laams-director-api/pkg/response"
)

type examService interface {
	ExamInformation(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamInformation, error)
	ExamExamineeList(ctx context.Context, examNo int64, claims *models.DirectorClaims) ([]dto.ExamExamineeItem, error)
	ExamExaminee(ctx context.Context, examNo, examineeNo int64, claims *models.DirectorClaims) (*dto.ExamExamineeDetail, error)
	ExamStatus(ctx context.Context, examNo int64, claims *models.DirectorClaims) (*dto.ExamStatus, error)
}

// ExamHandler exposes the exam detail and roster views.
type ExamHandler struct {
	service examService
}

// NewExamHandler builds a new handler.
func NewExamHandler(service examService) *ExamHandler {
	return &ExamHandler{service: service}
}

// Information handles GET /exams/:examNo.
func (h *ExamHandler) Information(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	info, err := h.service.ExamInformation(c.Request.Context(), examNo, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험 상세정보를 성공적으로 조회했습니다.", info)
}

// ExamineeList handles GET /exams/:examNo/examinees.
func (h *ExamHandler) ExamineeList(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.ExamExamineeList(c.Request.Context(), examNo, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험 응시자 목록을 성공적으로 조회했습니다.", items)
}

// Examinee handles GET /exams/:examNo/examinees/:examineeNo.
func (h *ExamHandler) Examinee(c *gin.Context) {
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

	detail, err := h.service.ExamExaminee(c.Request.Context(), examNo, examineeNo, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험 응시자의 상세 정보를 성공적으로 조회했습니다.", detail)
}

// Status handles GET /exams/:examNo/status.
func (h *ExamHandler) Status(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	status, err := h.service.ExamStatus(c.Request.Context(), examNo, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험 응시자의 현황을 성공적으로 조회했습니다.", status)
}
