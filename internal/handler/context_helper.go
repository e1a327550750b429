package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/dto"
	"github.com/multicampussa/laams-director-api/internal/middleware"
	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

const (
	msgBadPathVariable = "올바르지 않은 경로 변수입니다."
	msgBadPeriod       = "올바르지 않은 조회 기간입니다."
)

func claimsFromContext(c *gin.Context) *models.DirectorClaims {
	value, exists := c.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.DirectorClaims)
	if !ok {
		return nil
	}
	return claims
}

// pathInt64 parses a path variable as a positive integer.
func pathInt64(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, appErrors.InvalidArgument(msgBadPathVariable)
	}
	return value, nil
}

// queryPeriod parses the year/month/day calendar parameters. Day defaults
// to 0, which selects the whole month.
func queryPeriod(c *gin.Context) (dto.CalendarPeriod, error) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1970 || year > 9999 {
		return dto.CalendarPeriod{}, appErrors.InvalidArgument(msgBadPeriod)
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return dto.CalendarPeriod{}, appErrors.InvalidArgument(msgBadPeriod)
	}
	day := 0
	if raw := c.DefaultQuery("day", "0"); raw != "" {
		day, err = strconv.Atoi(raw)
		if err != nil || day < 0 || day > 31 {
			return dto.CalendarPeriod{}, appErrors.InvalidArgument(msgBadPeriod)
		}
	}
	return dto.CalendarPeriod{Year: year, Month: month, Day: day}, nil
}
