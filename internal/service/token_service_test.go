package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/multicampussa/laams-director-api/internal/models"
	appErrors "github.com/multicampussa/laams-director-api/pkg/errors"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims *models.DirectorClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestStripBearer(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{name: "with space", header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{name: "without space", header: "Bearerabc.def.ghi", token: "abc.def.ghi", ok: true},
		{name: "surrounding whitespace", header: "  Bearer abc  ", token: "abc", ok: true},
		{name: "empty", header: "", ok: false},
		{name: "no prefix", header: "abc.def.ghi", ok: false},
		{name: "prefix only", header: "Bearer ", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, ok := StripBearer(tc.header)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.token, token)
		})
	}
}

func TestTokenServiceValidate(t *testing.T) {
	svc := NewTokenService(testSecret)
	raw := signToken(t, testSecret, &models.DirectorClaims{
		ID:        "dir-7",
		Authority: "ROLE_DIRECTOR",
		CenterNo:  3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := svc.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, "dir-7", claims.ID)
	assert.Equal(t, int64(3), claims.CenterNo)
	assert.True(t, claims.IsDirector())
}

func TestTokenServiceValidateWrongSecret(t *testing.T) {
	svc := NewTokenService(testSecret)
	raw := signToken(t, "other-secret", &models.DirectorClaims{ID: "dir-7", Authority: "ROLE_DIRECTOR"})

	_, err := svc.Validate(raw)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.Equal(t, appErrors.MessageAccessDenied, appErrors.FromError(err).Message)
}

func TestTokenServiceValidateExpired(t *testing.T) {
	svc := NewTokenService(testSecret)
	raw := signToken(t, testSecret, &models.DirectorClaims{
		ID:        "dir-7",
		Authority: "ROLE_DIRECTOR",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	_, err := svc.Validate(raw)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestTokenServiceValidateGarbage(t *testing.T) {
	svc := NewTokenService(testSecret)

	_, err := svc.Validate("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestRoleFromString(t *testing.T) {
	assert.Equal(t, models.RoleDirector, models.RoleFromString("ROLE_DIRECTOR"))
	assert.Equal(t, models.RoleManager, models.RoleFromString("ROLE_MANAGER"))
	assert.Equal(t, models.RoleUnknown, models.RoleFromString("ROLE_ADMIN"))
	assert.Equal(t, models.RoleUnknown, models.RoleFromString(""))
}
