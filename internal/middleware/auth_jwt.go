package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

// CtxCallerKey holds the usecase.Caller resolved from the access token.
const CtxCallerKey = "caller"

// accessClaims mirrors the token AuthUsecase issues. UserID shadows the
// string Subject of RegisteredClaims so a numeric sub decodes directly.
type accessClaims struct {
	jwt.RegisteredClaims
	UserID int64      `json:"sub"`
	Role   model.Role `json:"role"`
}

// AuthJWT accepts "Authorization: Bearer <HS256 token>" and stores the
// caller on the context. Every failure is the same 401.
func AuthJWT(cfg config.Config) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			var claims accessClaims
			token, err := parser.ParseWithClaims(raw, &claims, keyFunc)
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			caller, ok := claims.caller()
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			c.Set(CtxCallerKey, caller)

			return next(c)
		}
	}
}

func (cl accessClaims) caller() (usecase.Caller, bool) {
	if cl.UserID <= 0 {
		return usecase.Caller{}, false
	}
	switch cl.Role {
	case model.RoleUser, model.RoleStaff:
	default:
		return usecase.Caller{}, false
	}
	return usecase.Caller{UserID: cl.UserID, IsStaff: cl.Role == model.RoleStaff}, true
}

func bearerToken(header string) (string, bool) {
	scheme, raw, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

// CallerFrom returns the caller AuthJWT stored, if the route is authenticated.
func CallerFrom(c echo.Context) (usecase.Caller, bool) {
	caller, ok := c.Get(CtxCallerKey).(usecase.Caller)
	return caller, ok
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}
