package service

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

// TokenService verifies LAAMS access tokens and exposes the caller
// principal. Tokens are issued by the login service; this side only decodes.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs a TokenService over the shared HS256 secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// StripBearer removes a leading Bearer prefix from an Authorization header.
// Legacy clients send both "Bearer <token>" and "Bearer<token>", so the
// space is optional. The second return value is false when the header does
// not carry a bearer token at all.
func StripBearer(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}
	const prefix = "Bearer"
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}

// Validate parses and verifies an access token returning the claims.
// Every verification failure collapses into the single unauthorized error.
func (s *TokenService) Validate(raw string) (*models.DirectorClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &models.DirectorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.MessageAccessDenied)
	}

	claims, ok := token.Claims.(*models.DirectorClaims)
	if !ok || !token.Valid {
		return nil, appErrors.ErrUnauthorized
	}

	return claims, nil
}
