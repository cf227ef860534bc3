package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/service/eventpublisher"
)

// AdminHandler groups the stores required by the privileged admin
// surface: agency CRUD, seat policy updates, bulk license status
// changes and version publishing. All routes using these methods sit
// behind the super-admin middleware, so the handlers themselves perform
// no credential checks.
type AdminHandler struct {
	Agencies AgencyStore
	Settings SettingStore
	Licenses LicenseStore
	Versions VersionStore
	Events   *eventpublisher.Publisher // nil disables event publishing
}

// NewAdminHandler constructs a new AdminHandler with the provided
// stores. Events may be nil.
func NewAdminHandler(agencies AgencyStore, settings SettingStore, licenses LicenseStore, versions VersionStore, events *eventpublisher.Publisher) *AdminHandler {
	if agencies == nil || settings == nil || licenses == nil || versions == nil {
		panic("nil store passed to NewAdminHandler")
	}
	return &AdminHandler{
		Agencies: agencies,
		Settings: settings,
		Licenses: licenses,
		Versions: versions,
		Events:   events,
	}
}

// agencyIDParam parses the :id path parameter. Zero and non-numeric
// values are rejected; callers respond with 400 when ok is false.
func agencyIDParam(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// dedupe removes empty and duplicate device ids while preserving order.
func dedupe(ids []string) []string {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}
