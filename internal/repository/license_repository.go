package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
)

// ActivationInput carries the device identity and reported metadata for
// an activation request. DeviceID and Username are required by the
// handler layer; the remaining fields are optional and stored as NULL
// when absent.
type ActivationInput struct {
	DeviceID        string
	Username        string
	Hostname        *string
	Location        *string
	OperatingSystem *string
}

// LicenseRepo is the seat-accounting engine. It owns the licenses table
// and enforces the one invariant that matters: the number of rows with
// status "active" for an agency never exceeds the agency's seat cap via
// the client activation path. All timestamps are UTC.
type LicenseRepo struct {
	db *sql.DB
}

// NewLicenseRepo returns a new LicenseRepo bound to the given database.
func NewLicenseRepo(db *sql.DB) *LicenseRepo { return &LicenseRepo{db: db} }

// Activate admits a device under the agency's seat cap and upserts its
// license row to "active", refreshing metadata and activated_at. The
// whole check-and-write runs in one transaction that first locks the
// agency's settings row (SELECT ... FOR UPDATE), serializing concurrent
// activations per agency so two requests cannot both pass the capacity
// check and overshoot the cap.
//
// Admission rule: a device whose row is already active is always let
// through (idempotent re-activation, metadata still refreshed); any
// other device — new or previously deactivated — needs a free seat,
// otherwise ErrSeatsExhausted is returned and nothing is written.
func (r *LicenseRepo) Activate(ctx context.Context, agencyID uint64, in ActivationInput) error {
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

	// Lock the seat policy row for this agency. With no policy row the
	// cap reads as 0 and no new device can be admitted, so the missing
	// lock cannot cause overshoot.
	var total int
	err = tx.QueryRowContext(ctx,
		`SELECT total_licenses FROM agency_settings WHERE agency_id = ? FOR UPDATE`,
		agencyID).Scan(&total)
	if err == sql.ErrNoRows {
		total = 0
	} else if err != nil {
		return err
	}

	var activeCount int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM licenses WHERE agency_id = ? AND status = ?`,
		agencyID, model.StatusActive).Scan(&activeCount)
	if err != nil {
		return err
	}

	var status string
	alreadyActive := false
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM licenses WHERE agency_id = ? AND device_id = ? LIMIT 1`,
		agencyID, in.DeviceID).Scan(&status)
	switch {
	case err == sql.ErrNoRows:
		// first activation for this device
	case err != nil:
		return err
	default:
		alreadyActive = status == model.StatusActive
	}

	if !alreadyActive && activeCount >= total {
		return ErrSeatsExhausted
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO licenses (agency_id, device_id, username, hostname, location, operating_system, activated_at, status)
		 VALUES (?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(), ?)
		 ON DUPLICATE KEY UPDATE
		   username = VALUES(username),
		   hostname = VALUES(hostname),
		   location = VALUES(location),
		   operating_system = VALUES(operating_system),
		   activated_at = VALUES(activated_at),
		   status = VALUES(status)`,
		agencyID, in.DeviceID, in.Username, in.Hostname, in.Location, in.OperatingSystem,
		model.StatusActive)
	if err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Check reports the license state for a device without mutating
// anything. The empty string means no row exists for the device
// ("unlicensed"); otherwise the stored status is returned.
func (r *LicenseRepo) Check(ctx context.Context, agencyID uint64, deviceID string) (string, error) {
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT status FROM licenses WHERE agency_id = ? AND device_id = ? LIMIT 1`,
		agencyID, deviceID).Scan(&status)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

// BulkSetStatus sets the status of all matching device rows in one
// statement and returns the number of rows actually changed. Device ids
// without an existing row are silently ignored, never created. This
// admin path runs no capacity check in either direction: deactivation
// must always be possible, and activation here deliberately mirrors the
// deployed behavior of the admin tooling.
func (r *LicenseRepo) BulkSetStatus(ctx context.Context, agencyID uint64, deviceIDs []string, status string) (int64, error) {
	if len(deviceIDs) == 0 {
		return 0, nil
	}
	query := `UPDATE licenses SET status = ? WHERE agency_id = ? AND device_id IN (` +
		placeholders(len(deviceIDs)) + `)`
	args := make([]interface{}, 0, len(deviceIDs)+2)
	args = append(args, status, agencyID)
	for _, id := range deviceIDs {
		args = append(args, id)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	// MySQL reports only rows whose value actually changed, which is
	// exactly the contract callers want.
	return res.RowsAffected()
}

// BulkDeleteInactive deletes the listed device rows only where their
// current status is "inactive"; active rows are left untouched even if
// listed. Returns the number of rows deleted.
func (r *LicenseRepo) BulkDeleteInactive(ctx context.Context, agencyID uint64, deviceIDs []string) (int64, error) {
	if len(deviceIDs) == 0 {
		return 0, nil
	}
	query := `DELETE FROM licenses WHERE agency_id = ? AND status = ? AND device_id IN (` +
		placeholders(len(deviceIDs)) + `)`
	args := make([]interface{}, 0, len(deviceIDs)+2)
	args = append(args, agencyID, model.StatusInactive)
	for _, id := range deviceIDs {
		args = append(args, id)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountActive returns the number of active license rows for an agency.
func (r *LicenseRepo) CountActive(ctx context.Context, agencyID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM licenses WHERE agency_id = ? AND status = ?`,
		agencyID, model.StatusActive).Scan(&n)
	return n, err
}

// ListByAgency returns all license rows for an agency ordered by most
// recent activation first.
func (r *LicenseRepo) ListByAgency(ctx context.Context, agencyID uint64) ([]model.License, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, agency_id, device_id, username, hostname, location, operating_system, activated_at, status
		 FROM licenses WHERE agency_id = ? ORDER BY activated_at DESC`,
		agencyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	licenses := make([]model.License, 0)
	for rows.Next() {
		var l model.License
		var hostname, location, operatingSystem sql.NullString
		if err := rows.Scan(&l.ID, &l.AgencyID, &l.DeviceID, &l.Username,
			&hostname, &location, &operatingSystem, &l.ActivatedAt, &l.Status); err != nil {
			return nil, err
		}
		if hostname.Valid {
			v := hostname.String
			l.Hostname = &v
		}
		if location.Valid {
			v := location.String
			l.Location = &v
		}
		if operatingSystem.Valid {
			v := operatingSystem.String
			l.OperatingSystem = &v
		}
		licenses = append(licenses, l)
	}
	return licenses, rows.Err()
}

// placeholders builds a "?, ?, ?" list for IN clauses.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
