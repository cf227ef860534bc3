package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/config"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/handler"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/metrics"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/middleware"
)

// RegisterRoutes registers routes that require no credentials: the
// health check used by load balancers and the Prometheus exposition
// endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.GetPrometheusHandler()))
}

// RegisterAdmin registers the privileged admin surface under
// /v1/admin. Every route in the group runs the super-admin middleware
// first; no handler executes past a failed secret comparison.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, superAdminKey string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.SuperAdminAuth(superAdminKey))

	// Agency lifecycle and seat policy.
	g.POST("/agencies", h.CreateAgency)
	g.GET("/agencies", h.ListAgencies)
	g.DELETE("/agencies/:id", h.DeleteAgency)
	g.GET("/agencies/:id/status", h.AgencyStatus)
	g.PUT("/agencies/:id/seats", h.SetSeats)

	// Bulk device operations on the license ledger.
	g.POST("/agencies/:id/devices/status", h.BulkSetStatus)
	g.DELETE("/agencies/:id/devices", h.BulkDeleteInactive)

	// Update distribution pointers.
	g.GET("/agencies/:id/versions", h.ListVersions)
	g.POST("/agencies/:id/versions/latest", h.SetLatestVersion)
}

// RegisterClient registers the endpoints consumed by agency client
// installations. The API-key middleware resolves the calling agency on
// every request; the latest-version lookup additionally sits behind the
// redis response cache (a nil redis client disables caching).
func RegisterClient(e *echo.Echo, h *handler.ClientHandler, resolver middleware.AgencyResolver, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.APIKeyAuth(resolver))

	g.POST("/license/activate", h.Activate)
	g.POST("/license/check", h.Check)
	g.GET("/version/latest", h.LatestVersion, middleware.VersionCache(cacheCfg, rdb))
}
