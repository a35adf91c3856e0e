package middleware

import (
	"net/http"

	"brokerkit/internal/models"

	"github.com/labstack/echo/v4"
)

// RequireAdmin gates the admin CRUD surface. The auth middleware must
// have run first.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetMemberRole(c) != string(models.MemberRoleAdmin) {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// RequireMember rejects anonymous requests. Unlike the full auth
// middleware it assumes identity resolution already happened.
func RequireMember() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetMemberID(c) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
