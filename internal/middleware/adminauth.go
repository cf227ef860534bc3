package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// AdminKeyHeader carries the super-admin shared secret on admin requests.
const AdminKeyHeader = "X-Admin-Key"

// SuperAdminAuth returns a middleware that gates the admin surface behind
// the configured shared secret. The comparison is a straight equality
// check, matching the deployed behavior of the service; it is not a
// constant-time comparison and the secret is not hashed. Failure is a
// uniform 403 and no handler logic runs past this gate. The secret is
// injected here once at startup so no business logic reads it from the
// ambient environment.
func SuperAdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if secret == "" || c.Request().Header.Get(AdminKeyHeader) != secret {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
