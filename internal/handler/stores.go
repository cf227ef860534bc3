package handler

import (
	"context"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

// Store interfaces consumed by the handlers. The repository package
// provides the MySQL implementations; tests substitute mocks. Keeping
// the interfaces here, next to their consumers, keeps them minimal.

// AgencyStore covers the tenant registry operations the admin surface
// needs.
type AgencyStore interface {
	Create(ctx context.Context, name string) (model.Agency, error)
	GetByID(ctx context.Context, id uint64) (model.Agency, error)
	List(ctx context.Context) ([]model.Agency, error)
	Delete(ctx context.Context, id uint64) error
}

// SettingStore covers the per-agency seat policy.
type SettingStore interface {
	GetTotalLicenses(ctx context.Context, agencyID uint64) (int, error)
	SetTotalLicenses(ctx context.Context, agencyID uint64, total int) error
}

// LicenseStore covers the seat-accounting ledger. Activate and Check
// serve the client paths; the bulk operations and listings serve the
// admin surface.
type LicenseStore interface {
	Activate(ctx context.Context, agencyID uint64, in repository.ActivationInput) error
	Check(ctx context.Context, agencyID uint64, deviceID string) (string, error)
	BulkSetStatus(ctx context.Context, agencyID uint64, deviceIDs []string, status string) (int64, error)
	BulkDeleteInactive(ctx context.Context, agencyID uint64, deviceIDs []string) (int64, error)
	CountActive(ctx context.Context, agencyID uint64) (int, error)
	ListByAgency(ctx context.Context, agencyID uint64) ([]model.License, error)
}

// VersionStore covers the per-agency update pointers.
type VersionStore interface {
	SetLatest(ctx context.Context, agencyID uint64, versionNumber, downloadURL string) error
	GetLatest(ctx context.Context, agencyID uint64) (model.Version, error)
	List(ctx context.Context, agencyID uint64) ([]model.Version, error)
}
