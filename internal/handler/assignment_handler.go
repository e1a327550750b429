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

type assignmentService interface {
	RequestExamAssignment(ctx context.Context, examNo int64, claims *models.DirectorClaims) error
}

// AssignmentHandler lets a director request assignment to an open exam.
type AssignmentHandler struct {
	service assignmentService
}

// NewAssignmentHandler builds a new handler.
func NewAssignmentHandler(service assignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: service}
}

// Request handles POST /exams/request with body {"examNo": <integer>}.
func (h *AssignmentHandler) Request(c *gin.Context) {
	claims := claimsFromContext(c)

	var req dto.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ExamNo == nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "시험 번호가 필요합니다."))
		return
	}

	if err := h.service.RequestExamAssignment(c.Request.Context(), *req.ExamNo, claims); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "감독관의 시험 배정 요청이 정상적으로 처리 되었습니다.", nil)
}
