package model

import "time"

// License status values.  A license row only ever moves between these two
// states; rows are created on first activation and removed only by the
// admin bulk delete of inactive devices.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// License records one device's activation state under an agency.  The
// pair (agency_id, device_id) is unique.  Hostname, location and
// operating system are informational metadata reported by the client and
// refreshed on every activation; they carry no business meaning.
//
// Fields:
//  ID              – primary key identifier.
//  AgencyID        – owning agency.
//  DeviceID        – stable identifier reported by the client install.
//  Username        – user reported at activation time.
//  Hostname        – machine hostname, if reported.
//  Location        – free-form location, if reported.
//  OperatingSystem – OS description, if reported.
//  ActivatedAt     – timestamp of the most recent activation (UTC).
//  Status          – "active" or "inactive".
type License struct {
	ID              uint64    `json:"id"`                         // licenses.id
	AgencyID        uint64    `json:"agency_id"`                  // licenses.agency_id
	DeviceID        string    `json:"device_id"`                  // licenses.device_id
	Username        string    `json:"username"`                   // licenses.username
	Hostname        *string   `json:"hostname,omitempty"`         // licenses.hostname (nullable)
	Location        *string   `json:"location,omitempty"`         // licenses.location (nullable)
	OperatingSystem *string   `json:"operating_system,omitempty"` // licenses.operating_system (nullable)
	ActivatedAt     time.Time `json:"activated_at"`               // licenses.activated_at
	Status          string    `json:"status"`                     // licenses.status
}
