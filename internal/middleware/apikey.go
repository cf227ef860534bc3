package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

// APIKeyHeader carries the agency API key on client requests.
const APIKeyHeader = "X-API-Key"

// agencyContextKey is the echo context key under which the resolved
// agency is stored for downstream handlers.
const agencyContextKey = "agency"

// AgencyResolver resolves an opaque API key to an agency. Satisfied by
// *repository.AgencyRepo in production and by mocks in tests.
type AgencyResolver interface {
	GetByAPIKey(ctx context.Context, key string) (model.Agency, error)
}

// APIKeyAuth returns a middleware that resolves the agency API key on
// every client-facing request and stashes the agency in the context.
// A missing or unknown key yields the same 403 response, so callers
// cannot tell a malformed key apart from an unregistered one.
func APIKeyAuth(resolver AgencyResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(APIKeyHeader)
			if key == "" {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid API key"})
			}
			agency, err := resolver.GetByAPIKey(c.Request().Context(), key)
			if err != nil {
				if errors.Is(err, repository.ErrAgencyNotFound) {
					return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid API key"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
			}
			c.Set(agencyContextKey, agency)
			return next(c)
		}
	}
}

// AgencyFromContext returns the agency stored by APIKeyAuth. The second
// return value is false when no agency was resolved, which means the
// route was registered without the middleware.
func AgencyFromContext(c echo.Context) (model.Agency, bool) {
	a, ok := c.Get(agencyContextKey).(model.Agency)
	return a, ok
}
