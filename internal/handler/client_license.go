package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/metrics"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/middleware"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/queue"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/service/eventpublisher"
)

// ClientHandler serves the endpoints consumed by agency client
// installations: license activation, license checks and update lookups.
// All methods assume the API-key middleware has already resolved the
// calling agency into the request context; a missing agency means the
// route was wired without the middleware and is answered with 403.
type ClientHandler struct {
	Licenses LicenseStore
	Versions VersionStore
	Events   *eventpublisher.Publisher // nil disables event publishing
	Metrics  *metrics.HTTPMetrics      // nil disables activation counters
}

// NewClientHandler constructs a new ClientHandler with the provided
// stores. Events and Metrics may be nil.
func NewClientHandler(licenses LicenseStore, versions VersionStore, events *eventpublisher.Publisher, m *metrics.HTTPMetrics) *ClientHandler {
	if licenses == nil || versions == nil {
		panic("nil store passed to NewClientHandler")
	}
	return &ClientHandler{Licenses: licenses, Versions: versions, Events: events, Metrics: m}
}

// Activate handles POST /v1/license/activate. The body must carry a
// device_id; username and the remaining metadata fields are informational
// and refreshed on every call. The store admits the device only when a
// seat is free or the device is already active; a full pool yields 429
// with no state change. Reactivating a previously deactivated device
// goes through the same gate and consumes a seat again.
func (h *ClientHandler) Activate(c echo.Context) error {
	agency, ok := middleware.AgencyFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid API key"})
	}
	var body struct {
		DeviceID        string  `json:"device_id"`
		Username        string  `json:"username"`
		Hostname        *string `json:"hostname"`
		Location        *string `json:"location"`
		OperatingSystem *string `json:"operating_system"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	deviceID := strings.TrimSpace(body.DeviceID)
	if deviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_id is required"})
	}

	err := h.Licenses.Activate(c.Request().Context(), agency.ID, repository.ActivationInput{
		DeviceID:        deviceID,
		Username:        body.Username,
		Hostname:        body.Hostname,
		Location:        body.Location,
		OperatingSystem: body.OperatingSystem,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSeatsExhausted) {
			h.Metrics.ObserveActivation("seats_exhausted")
			return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "no license seats available"})
		}
		h.Metrics.ObserveActivation("error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	h.Metrics.ObserveActivation("activated")

	// Best-effort event; a broker hiccup must not fail the activation.
	_ = h.Events.PublishActivated(c.Request().Context(), queue.LicenseActivatedEvent{
		AgencyID:    agency.ID,
		AgencyName:  agency.Name,
		DeviceID:    deviceID,
		Username:    body.Username,
		ActivatedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "license activated"})
}

// Check handles POST /v1/license/check. It reports one of three
// outcomes for the given device and never mutates state: the device may
// be unlicensed (no ledger row), active, or deactivated by an
// administrator.
func (h *ClientHandler) Check(c echo.Context) error {
	agency, ok := middleware.AgencyFromContext(c)
	if !ok {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid API key"})
	}
	var body struct {
		DeviceID string `json:"device_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	deviceID := strings.TrimSpace(body.DeviceID)
	if deviceID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "device_id is required"})
	}

	status, err := h.Licenses.Check(c.Request().Context(), agency.ID, deviceID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	switch status {
	case model.StatusActive:
		return c.JSON(http.StatusOK, echo.Map{
			"licensed": true,
			"status":   "active",
			"message":  "license is active",
		})
	case model.StatusInactive:
		return c.JSON(http.StatusOK, echo.Map{
			"licensed": false,
			"status":   "deactivated",
			"message":  "license deactivated by administrator",
		})
	default:
		return c.JSON(http.StatusOK, echo.Map{
			"licensed": false,
			"status":   "unlicensed",
			"message":  "device is not licensed",
		})
	}
}
