// Package queue defines message payloads exchanged over the message broker.
package queue

// LicenseActivatedEvent is published after a successful client
// activation. It contains enough information for downstream consumers
// (fleet dashboards, analytics) without querying the primary database.
type LicenseActivatedEvent struct {
	AgencyID    uint64 `json:"agency_id"`
	AgencyName  string `json:"agency_name"`
	DeviceID    string `json:"device_id"`
	Username    string `json:"username"`
	ActivatedAt string `json:"activated_at"`
}

// LicenseDeactivatedEvent is published after an admin bulk deactivation
// changes at least one row.
type LicenseDeactivatedEvent struct {
	AgencyID      uint64   `json:"agency_id"`
	DeviceIDs     []string `json:"device_ids"`
	Changed       int64    `json:"changed"`
	DeactivatedAt string   `json:"deactivated_at"`
}

// Queue names used by the publisher. Durable queues, declared
// idempotently on each publish.
const (
	QueueLicenseActivated   = "license.activated"
	QueueLicenseDeactivated = "license.deactivated"
)
