package repository

import (
	"context"
	"database/sql"
)

// SettingRepo provides data access to the agency_settings table, the
// per-agency seat policy. Each agency owns exactly one row, created
// alongside the agency itself by AgencyRepo.Create.
type SettingRepo struct {
	db *sql.DB
}

// NewSettingRepo returns a new SettingRepo bound to the given database.
func NewSettingRepo(db *sql.DB) *SettingRepo { return &SettingRepo{db: db} }

// GetTotalLicenses returns the seat cap for an agency. A missing policy
// row yields 0 rather than an error; agency creation guarantees the row
// exists, so 0 is a defensive fallback that simply blocks activation.
func (r *SettingRepo) GetTotalLicenses(ctx context.Context, agencyID uint64) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT total_licenses FROM agency_settings WHERE agency_id = ? LIMIT 1`,
		agencyID).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return total, nil
}

// SetTotalLicenses upserts the seat cap for an agency. Lowering the cap
// below the current active count does not deactivate anything; further
// activations are simply blocked until usage drops under the new cap.
// Callers are responsible for rejecting negative values.
func (r *SettingRepo) SetTotalLicenses(ctx context.Context, agencyID uint64, total int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO agency_settings (agency_id, total_licenses) VALUES (?, ?)
		 ON DUPLICATE KEY UPDATE total_licenses = VALUES(total_licenses)`,
		agencyID, total)
	return err
}
