package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

// CreateAgency handles POST /v1/admin/agencies. The request body must
// contain a non-empty "name". On success the full agency record is
// returned with 201 so the operator can hand the generated API key to
// the agency. The agency row and its default seat policy are created as
// one atomic unit by the store.
func (h *AdminHandler) CreateAgency(c echo.Context) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "agency name is required"})
	}
	agency, err := h.Agencies.Create(c.Request().Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAgency) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "an agency with this name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"agency": agency})
}

// ListAgencies handles GET /v1/admin/agencies and returns all agencies
// ordered by name.
func (h *AdminHandler) ListAgencies(c echo.Context) error {
	agencies, err := h.Agencies.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"agencies": agencies})
}

// DeleteAgency handles DELETE /v1/admin/agencies/:id. Settings, licenses
// and versions vanish with the agency through the schema's cascades; a
// missing id yields 404 regardless of cascade behavior.
func (h *AdminHandler) DeleteAgency(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	if err := h.Agencies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAgencyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "agency not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "agency deleted"})
}

// AgencyStatus handles GET /v1/admin/agencies/:id/status. It reports the
// seat cap, the active count, the remaining seats and the full device
// ledger ordered by most recent activation. Remaining is surfaced as-is
// and goes negative when an admin lowered the cap below current usage.
func (h *AdminHandler) AgencyStatus(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	ctx := c.Request().Context()
	agency, err := h.Agencies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAgencyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "agency not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	total, err := h.Settings.GetTotalLicenses(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	active, err := h.Licenses.CountActive(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	devices, err := h.Licenses.ListByAgency(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"agency_id":      agency.ID,
		"agency_name":    agency.Name,
		"total_licenses": total,
		"active_count":   active,
		"remaining":      total - active,
		"devices":        devices,
	})
}

// SetSeats handles PUT /v1/admin/agencies/:id/seats. The body must carry
// a non-negative integer "total_licenses". Existing license rows are
// untouched; lowering the cap below usage only blocks further
// activations.
func (h *AdminHandler) SetSeats(c echo.Context) error {
	id, ok := agencyIDParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid agency id"})
	}
	var body struct {
		TotalLicenses *int `json:"total_licenses"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.TotalLicenses == nil || *body.TotalLicenses < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total_licenses must be a non-negative integer"})
	}
	ctx := c.Request().Context()
	if _, err := h.Agencies.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAgencyNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "agency not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Settings.SetTotalLicenses(ctx, id, *body.TotalLicenses); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "seat cap updated", "total_licenses": *body.TotalLicenses})
}
