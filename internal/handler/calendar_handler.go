package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/models"
	"github.com/multicampussa/laams-director-api/pkg/response"
)

type calendarService interface {
	ExamCalendar(ctx context.Context, directorNo int64, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error)
	UnappliedAndUnapprovedExamList(ctx context.Context, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error)
	PossibleToApplyExamList(ctx context.Context, period dto.CalendarPeriod, claims *models.DirectorClaims) ([]dto.ExamCalendarItem, error)
}

// CalendarHandler exposes the exam calendar listings.
type CalendarHandler struct {
	service calendarService
}

// NewCalendarHandler builds a new handler.
func NewCalendarHandler(service calendarService) *CalendarHandler {
	return &CalendarHandler{service: service}
}

// MonthDayList handles GET /:directorNo/exams. Day 0 aggregates the month.
func (h *CalendarHandler) MonthDayList(c *gin.Context) {
	claims := claimsFromContext(c)
	directorNo, err := pathInt64(c, "directorNo")
	if err != nil {
		response.Error(c, err)
		return
	}
	period, err := queryPeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.ExamCalendar(c.Request.Context(), directorNo, period, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험을 성공적으로 조회했습니다.", items)
}

// UnappliedAndUnapproved handles GET /exams/unapproved.
func (h *CalendarHandler) UnappliedAndUnapproved(c *gin.Context) {
	claims := claimsFromContext(c)
	period, err := queryPeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.UnappliedAndUnapprovedExamList(c.Request.Context(), period, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험을 성공적으로 조회했습니다.", items)
}

// PossibleToApply handles GET /exams/possibleApply.
func (h *CalendarHandler) PossibleToApply(c *gin.Context) {
	claims := claimsFromContext(c)
	period, err := queryPeriod(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	items, err := h.service.PossibleToApplyExamList(c.Request.Context(), period, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "시험을 성공적으로 조회했습니다.", items)
}
