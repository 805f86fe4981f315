package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okResponse struct {
	UserID  int64 `json:"user_id"`
	IsStaff bool  `json:"is_staff"`
}

func mustMakeJWT(t *testing.T, secret string, claims jwt.MapClaims, method jwt.SigningMethod) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims(sub int64, role string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
}

func newEcho(cfg config.Config, guards ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	mws := append([]echo.MiddlewareFunc{AuthJWT(cfg)}, guards...)
	e.GET("/protected", func(c echo.Context) error {
		caller, _ := CallerFrom(c)
		return c.JSON(http.StatusOK, okResponse{UserID: caller.UserID, IsStaff: caller.IsStaff})
	}, mws...)
	return e
}

func runRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthJWT_Rejects(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	expired := validClaims(1, "USER")
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "bad scheme", header: "Token abc.def.ghi"},
		{name: "empty token", header: "Bearer  "},
		{name: "bad signature", header: "Bearer " + mustMakeJWT(t, "wrong-secret", validClaims(1, "USER"), jwt.SigningMethodHS256)},
		{name: "wrong alg", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, validClaims(1, "USER"), jwt.SigningMethodHS512)},
		{name: "expired", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, expired, jwt.SigningMethodHS256)},
		{name: "missing role", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": 1}, jwt.SigningMethodHS256)},
		{name: "unknown role", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, validClaims(1, "ADMIN"), jwt.SigningMethodHS256)},
		{name: "zero sub", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, validClaims(0, "USER"), jwt.SigningMethodHS256)},
		{name: "string sub", header: "Bearer " + mustMakeJWT(t, cfg.JWTSecret, jwt.MapClaims{"sub": "abc", "role": "USER"}, jwt.SigningMethodHS256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runRequest(newEcho(cfg), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "unauthorized", body.Error)
		})
	}
}

func TestAuthJWT_SetsCaller(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	tests := []struct {
		role string
		want okResponse
	}{
		{role: "USER", want: okResponse{UserID: 123}},
		{role: "STAFF", want: okResponse{UserID: 123, IsStaff: true}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			raw := mustMakeJWT(t, cfg.JWTSecret, validClaims(123, tt.role), jwt.SigningMethodHS256)
			rec := runRequest(newEcho(cfg), "bearer "+raw)
			require.Equal(t, http.StatusOK, rec.Code)

			var body okResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestStaffGuard(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	e := newEcho(cfg, StaffGuard())

	rec := runRequest(e, "Bearer "+mustMakeJWT(t, cfg.JWTSecret, validClaims(1, "USER"), jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = runRequest(e, "Bearer "+mustMakeJWT(t, cfg.JWTSecret, validClaims(2, "STAFF"), jwt.SigningMethodHS256))
	assert.Equal(t, http.StatusOK, rec.Code)

	// without AuthJWT in front there is no caller
	bare := echo.New()
	bare.GET("/protected", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, StaffGuard())
	rec = runRequest(bare, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
