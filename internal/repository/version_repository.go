package repository

import (
	"context"
	"database/sql"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
)

// VersionRepo provides data access to the versions table, the
// per-agency update pointers consumed by clients checking for updates.
// The invariant it maintains: at most one row per agency has
// is_latest = TRUE at any time.
type VersionRepo struct {
	db *sql.DB
}

// NewVersionRepo returns a new VersionRepo bound to the given database.
func NewVersionRepo(db *sql.DB) *VersionRepo { return &VersionRepo{db: db} }

// SetLatest publishes a version as the agency's current update target.
// The clear-then-set runs in one transaction so a concurrent GetLatest
// never observes zero or two latest rows. Re-publishing an existing
// version number refreshes its release date and download URL.
func (r *VersionRepo) SetLatest(ctx context.Context, agencyID uint64, versionNumber, downloadURL string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`UPDATE versions SET is_latest = FALSE WHERE agency_id = ?`,
		agencyID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO versions (agency_id, version_number, download_url, release_date, is_latest)
		 VALUES (?, ?, ?, UTC_TIMESTAMP(), TRUE)
		 ON DUPLICATE KEY UPDATE
		   download_url = VALUES(download_url),
		   release_date = VALUES(release_date),
		   is_latest = TRUE`,
		agencyID, versionNumber, downloadURL); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetLatest returns the single is_latest row for an agency, or
// ErrNoVersion when nothing has been published yet.
func (r *VersionRepo) GetLatest(ctx context.Context, agencyID uint64) (model.Version, error) {
	var v model.Version
	err := r.db.QueryRowContext(ctx,
		`SELECT id, agency_id, version_number, release_date, download_url, is_latest
		 FROM versions WHERE agency_id = ? AND is_latest = TRUE LIMIT 1`,
		agencyID).Scan(&v.ID, &v.AgencyID, &v.VersionNumber, &v.ReleaseDate, &v.DownloadURL, &v.IsLatest)
	if err == sql.ErrNoRows {
		return v, ErrNoVersion
	}
	return v, err
}

// List returns all versions for an agency ordered by release date
// descending.
func (r *VersionRepo) List(ctx context.Context, agencyID uint64) ([]model.Version, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, agency_id, version_number, release_date, download_url, is_latest
		 FROM versions WHERE agency_id = ? ORDER BY release_date DESC`,
		agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]model.Version, 0)
	for rows.Next() {
		var v model.Version
		if err := rows.Scan(&v.ID, &v.AgencyID, &v.VersionNumber, &v.ReleaseDate, &v.DownloadURL, &v.IsLatest); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
