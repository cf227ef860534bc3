package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListVersions handles GET /v1/admin/agencies/:id/versions and returns
// the agency's versions ordered by release date descending.
func (h *AdminHandler) ListVersions(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	versions, err := h.Versions.List(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"versions": versions})
}

// SetLatestVersion handles POST /v1/admin/agencies/:id/versions/latest.
// Both version_number and download_url are required. The store clears
// is_latest on all sibling versions and sets it on this one in a single
// transaction, so clients never observe zero or two latest versions.
func (h *AdminHandler) SetLatestVersion(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	var body struct {
		VersionNumber string `json:"version_number"`
		DownloadURL   string `json:"download_url"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	versionNumber := strings.TrimSpace(body.VersionNumber)
	downloadURL := strings.TrimSpace(body.DownloadURL)
	if versionNumber == "" || downloadURL == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "version_number and download_url are required"})
	}
	if err := h.Versions.SetLatest(c.Request().Context(), id, versionNumber, downloadURL); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "latest version updated", "version_number": versionNumber})
}
