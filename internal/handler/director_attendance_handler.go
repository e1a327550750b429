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

type directorAttendanceService interface {
	AttendanceDirector(ctx context.Context, examNo, directorNo int64, req dto.DirectorAttendanceRequest, claims *models.DirectorClaims) (*dto.DirectorAttendanceResponse, error)
	AttendanceDirectorHome(ctx context.Context, req dto.DirectorAttendanceRequest, claims *models.DirectorClaims) (*dto.DirectorAttendanceResponse, error)
}

// DirectorAttendanceHandler records center arrival check-ins.
type DirectorAttendanceHandler struct {
	service directorAttendanceService
}

// NewDirectorAttendanceHandler builds a new handler.
func NewDirectorAttendanceHandler(service directorAttendanceService) *DirectorAttendanceHandler {
	return &DirectorAttendanceHandler{service: service}
}

// CheckIn handles POST /exams/:examNo/:directorNo/attendance.
func (h *DirectorAttendanceHandler) CheckIn(c *gin.Context) {
	claims := claimsFromContext(c)
	examNo, err := pathInt64(c, "examNo")
	if err != nil {
		response.Error(c, err)
		return
	}
	directorNo, err := pathInt64(c, "directorNo")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.DirectorAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "센터 도착 인증 정보가 올바르지 않습니다."))
		return
	}

	record, err := h.service.AttendanceDirector(c.Request.Context(), examNo, directorNo, req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "센터 도착이 인증되었습니다.", record)
}

// CheckInHome handles POST /exams/attendance/home. The exam is inferred
// from the caller's approved assignment for today.
func (h *DirectorAttendanceHandler) CheckInHome(c *gin.Context) {
	claims := claimsFromContext(c)

	var req dto.DirectorAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, http.StatusBadRequest, "센터 도착 인증 정보가 올바르지 않습니다."))
		return
	}

	record, err := h.service.AttendanceDirectorHome(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "센터 도착이 인증되었습니다.", record)
}
