package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/multicampussa/laams-director-api/internal/models"
	"github.com/multicampussa/laams-director-api/internal/service"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
	"github.com/multicampussa/laams-director-api/pkg/response"
)

// ContextClaimsKey is the gin context key storing the caller principal.
const ContextClaimsKey = "directorClaims"

// Auth extracts and verifies the bearer token on every request. A missing
// or malformed Authorization header renders 400; a token that fails
// verification renders 401. Both carry the fixed access-denied message.
func Auth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := service.StripBearer(c.GetHeader("Authorization"))
		if !ok {
			response.Fail(c, http.StatusBadRequest, appErrors.MessageAccessDenied)
			c.Abort()
			return
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		c.Next()
	}
}

// RequireDirector aborts any request whose caller does not hold the
// director authority. Services still re-check; this gate just fails fast.
func RequireDirector() gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextClaimsKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := value.(*models.DirectorClaims)
		if !ok || !claims.IsDirector() {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}
