package model

import "time"

// Version is an update-distribution pointer for an agency.  The pair
// (agency_id, version_number) is unique and at most one row per agency
// carries IsLatest = true; SetLatest clears the flag on all siblings
// before setting it.
//
// Fields:
//  ID            – primary key identifier.
//  AgencyID      – owning agency.
//  VersionNumber – version string as advertised to clients.
//  ReleaseDate   – timestamp of the most recent publish of this version.
//  DownloadURL   – where clients fetch the build.
//  IsLatest      – whether this is the currently advertised version.
type Version struct {
	ID            uint64    `json:"id"`             // versions.id
	AgencyID      uint64    `json:"agency_id"`      // versions.agency_id
	VersionNumber string    `json:"version_number"` // versions.version_number
	ReleaseDate   time.Time `json:"release_date"`   // versions.release_date
	DownloadURL   string    `json:"download_url"`   // versions.download_url
	IsLatest      bool      `json:"is_latest"`      // versions.is_latest
}
