package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/middleware"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

// LatestVersion handles GET /v1/version/latest. It returns the agency's
// currently advertised update target, or a well-defined "nothing
// published" payload when no version exists — that outcome is a normal
// 200, distinguishable from an error by the "available" flag. The route
// sits behind the redis response cache, keyed per API key.
func (h *ClientHandler) LatestVersion(c echo.Context) error {
	agency, ok := middleware.AgencyFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid API key"})
	}
	v, err := h.Versions.GetLatest(c.Request().Context(), agency.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNoVersion) {
			return c.JSON(http.StatusOK, echo.Map{
				"available": false,
				"message":   "no version published",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"available":      true,
		"version_number": v.VersionNumber,
		"download_url":   v.DownloadURL,
		"release_date":   v.ReleaseDate,
	})
}
