package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaffGuard runs after AuthJWT and lets only STAFF through.
func StaffGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			caller, ok := CallerFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			if !caller.IsStaff {
				return c.JSON(http.StatusForbidden, errorJSON("staff only"))
			}
			return next(c)
		}
	}
}
