package model

import "time"

// Agency represents a customer organization that has purchased a pool of
// device licenses.  Each agency holds a unique opaque API key that client
// installations present on every request.  Agencies are created only by
// the super admin; deleting one cascades to its settings, licenses and
// versions at the database level.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – unique human-readable agency name.
//  APIKey    – opaque key presented by client applications.
//  CreatedAt – creation timestamp (UTC).
type Agency struct {
	ID        uint64    `json:"id"`         // agencies.id
	Name      string    `json:"name"`       // agencies.name
	APIKey    string    `json:"api_key"`    // agencies.api_key
	CreatedAt time.Time `json:"created_at"` // agencies.created_at
}

// AgencySetting holds the per-agency seat policy.  Exactly one row exists
// per agency; it is created together with the agency and may be upserted
// by the admin surface at any time.
//
// Fields:
//  ID            – primary key identifier.
//  AgencyID      – owning agency.
//  TotalLicenses – maximum number of simultaneously active devices.
type AgencySetting struct {
	ID            uint64 `json:"id"`             // agency_settings.id
	AgencyID      uint64 `json:"agency_id"`      // agency_settings.agency_id
	TotalLicenses int    `json:"total_licenses"` // agency_settings.total_licenses
}

// DefaultTotalLicenses is the seat cap assigned to a newly created agency.
const DefaultTotalLicenses = 25
