package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/queue"
)

// BulkSetStatus handles POST /v1/admin/agencies/:id/devices/status. It
// flips the status of the listed devices in one statement and reports
// how many rows actually changed. Devices without an existing ledger row
// are silently skipped. No seat-capacity check runs on this path in
// either direction — an admin can always deactivate, and bulk activation
// intentionally mirrors the deployed tooling's behavior of bypassing the
// cap (the client activation path is the only capacity-gated one).
func (h *AdminHandler) BulkSetStatus(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	var body struct {
		DeviceIDs []string `json:"device_ids"`
		Status    string   `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status != model.StatusActive && body.Status != model.StatusInactive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be 'active' or 'inactive'"})
	}
	unique := dedupe(body.DeviceIDs)
	if len(unique) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_ids is required"})
	}
	changed, err := h.Licenses.BulkSetStatus(c.Request().Context(), id, unique, body.Status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if body.Status == model.StatusInactive && changed > 0 {
		// Best-effort event; a broker hiccup must not fail the request.
		_ = h.Events.PublishDeactivated(c.Request().Context(), queue.LicenseDeactivatedEvent{
			AgencyID:      id,
			DeviceIDs:     unique,
			Changed:       changed,
			DeactivatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"changed": changed})
}

// BulkDeleteInactive handles DELETE /v1/admin/agencies/:id/devices. Only
// rows whose current status is inactive are removed; active devices stay
// untouched even when listed. The count of deleted rows is returned.
func (h *AdminHandler) BulkDeleteInactive(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	var body struct {
		DeviceIDs []string `json:"device_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	unique := dedupe(body.DeviceIDs)
	if len(unique) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_ids is required"})
	}
	deleted, err := h.Licenses.BulkDeleteInactive(c.Request().Context(), id, unique)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}
