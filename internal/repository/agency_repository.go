package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
)

// AgencyRepo provides data access to the agencies table. Creating an
// agency also creates its seat policy row inside the same transaction,
// so a partially created agency can never be observed. All timestamps
// are stored in UTC.
type AgencyRepo struct {
	db *sql.DB
}

// NewAgencyRepo returns a new AgencyRepo bound to the given database.
func NewAgencyRepo(db *sql.DB) *AgencyRepo { return &AgencyRepo{db: db} }

// DB exposes the underlying handle so callers can open transactions that
// span multiple repositories.
func (r *AgencyRepo) DB() *sql.DB { return r.db }

// Create inserts a new agency with a freshly generated opaque API key and
// its default seat policy as a single atomic unit. It returns the full
// agency record including the key. A name collision yields
// ErrDuplicateAgency and no rows are written.
func (r *AgencyRepo) Create(ctx context.Context, name string) (model.Agency, error) {
	var a model.Agency
	apiKey := uuid.New().String()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return a, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO agencies (name, api_key) VALUES (?, ?)`,
		name, apiKey)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return a, ErrDuplicateAgency
		}
		return a, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return a, err
	}
	// Seat policy row with the default cap; the agency create is only
	// valid together with it.
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO agency_settings (agency_id, total_licenses) VALUES (?, ?)`,
		id, model.DefaultTotalLicenses); err != nil {
		return a, err
	}
	// Query back the full row so created_at reflects the database default.
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, api_key, created_at FROM agencies WHERE id = ?`, id).
		Scan(&a.ID, &a.Name, &a.APIKey, &a.CreatedAt)
	if err != nil {
		return a, err
	}
	if err = tx.Commit(); err != nil {
		return model.Agency{}, err
	}
	committed = true
	return a, nil
}

// GetByAPIKey resolves an agency from the opaque key presented by a
// client. An unknown key yields ErrAgencyNotFound; callers must not leak
// whether the key was malformed or merely absent.
func (r *AgencyRepo) GetByAPIKey(ctx context.Context, key string) (model.Agency, error) {
	var a model.Agency
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, api_key, created_at FROM agencies WHERE api_key = ? LIMIT 1`,
		key).Scan(&a.ID, &a.Name, &a.APIKey, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, ErrAgencyNotFound
	}
	return a, err
}

// GetByID fetches a single agency by primary key.
func (r *AgencyRepo) GetByID(ctx context.Context, id uint64) (model.Agency, error) {
	var a model.Agency
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, api_key, created_at FROM agencies WHERE id = ? LIMIT 1`,
		id).Scan(&a.ID, &a.Name, &a.APIKey, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return a, ErrAgencyNotFound
	}
	return a, err
}

// List returns all agencies ordered by name.
func (r *AgencyRepo) List(ctx context.Context) ([]model.Agency, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, api_key, created_at FROM agencies ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agencies := make([]model.Agency, 0)
	for rows.Next() {
		var a model.Agency
		if err := rows.Scan(&a.ID, &a.Name, &a.APIKey, &a.CreatedAt); err != nil {
			return nil, err
		}
		agencies = append(agencies, a)
	}
	return agencies, rows.Err()
}

// Delete removes an agency by id. Settings, licenses and versions are
// removed by the foreign-key cascade. ErrAgencyNotFound is reported when
// no row matched, independent of cascade outcome.
func (r *AgencyRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agencies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAgencyNotFound
	}
	return nil
}
