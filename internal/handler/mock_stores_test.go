package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

// memStore is an in-memory implementation of all four store interfaces
// used by the handlers, with the same semantics as the MySQL
// repositories: seat-gated activation serialized per store (the mutex
// stands in for the settings-row lock), change-counting bulk updates,
// inactive-only bulk deletes and latest-version exclusivity. Handler
// tests run against it instead of a live database.
type memStore struct {
	mu       sync.Mutex
	nextID   uint64
	agencies map[uint64]model.Agency
	caps     map[uint64]int
	licenses map[uint64]map[string]*model.License
}

func newMemStore() *memStore {
	return &memStore{
		agencies: make(map[uint64]model.Agency),
		caps:     make(map[uint64]int),
		licenses: make(map[uint64]map[string]*model.License),
	}
}

// seedAgency inserts an agency with the given seat cap and returns it.
func (s *memStore) seedAgency(name, apiKey string, cap int) model.Agency {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a := model.Agency{ID: s.nextID, Name: name, APIKey: apiKey, CreatedAt: time.Now().UTC()}
	s.agencies[a.ID] = a
	s.caps[a.ID] = cap
	s.licenses[a.ID] = make(map[string]*model.License)
	return a
}

// --- AgencyStore ---

func (s *memStore) Create(_ context.Context, name string) (model.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agencies {
		if a.Name == name {
			return model.Agency{}, repository.ErrDuplicateAgency
		}
	}
	s.nextID++
	a := model.Agency{ID: s.nextID, Name: name, APIKey: "key-" + name, CreatedAt: time.Now().UTC()}
	s.agencies[a.ID] = a
	s.caps[a.ID] = model.DefaultTotalLicenses
	s.licenses[a.ID] = make(map[string]*model.License)
	return a, nil
}

func (s *memStore) GetByID(_ context.Context, id uint64) (model.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.agencies[id]
	if !ok {
		return model.Agency{}, repository.ErrAgencyNotFound
	}
	return a, nil
}

func (s *memStore) GetByAPIKey(_ context.Context, key string) (model.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.agencies {
		if a.APIKey == key {
			return a, nil
		}
	}
	return model.Agency{}, repository.ErrAgencyNotFound
}

func (s *memStore) List(_ context.Context) ([]model.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Agency, 0, len(s.agencies))
	for _, a := range s.agencies {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.agencies[id]; !ok {
		return repository.ErrAgencyNotFound
	}
	// cascade
	delete(s.agencies, id)
	delete(s.caps, id)
	delete(s.licenses, id)
	return nil
}

// --- SettingStore ---

func (s *memStore) GetTotalLicenses(_ context.Context, agencyID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caps[agencyID], nil
}

func (s *memStore) SetTotalLicenses(_ context.Context, agencyID uint64, total int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caps[agencyID] = total
	return nil
}

// --- LicenseStore ---

func (s *memStore) Activate(_ context.Context, agencyID uint64, in repository.ActivationInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := s.caps[agencyID]
	rows := s.licenses[agencyID]
	if rows == nil {
		rows = make(map[string]*model.License)
		s.licenses[agencyID] = rows
	}
	active := 0
	for _, l := range rows {
		if l.Status == model.StatusActive {
			active++
		}
	}
	existing := rows[in.DeviceID]
	alreadyActive := existing != nil && existing.Status == model.StatusActive
	if !alreadyActive && active >= total {
		return repository.ErrSeatsExhausted
	}
	s.nextID++
	id := s.nextID
	if existing != nil {
		id = existing.ID
	}
	rows[in.DeviceID] = &model.License{
		ID:              id,
		AgencyID:        agencyID,
		DeviceID:        in.DeviceID,
		Username:        in.Username,
		Hostname:        in.Hostname,
		Location:        in.Location,
		OperatingSystem: in.OperatingSystem,
		ActivatedAt:     time.Now().UTC(),
		Status:          model.StatusActive,
	}
	return nil
}

func (s *memStore) Check(_ context.Context, agencyID uint64, deviceID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.licenses[agencyID][deviceID]; ok {
		return l.Status, nil
	}
	return "", nil
}

func (s *memStore) BulkSetStatus(_ context.Context, agencyID uint64, deviceIDs []string, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var changed int64
	for _, id := range deviceIDs {
		if l, ok := s.licenses[agencyID][id]; ok && l.Status != status {
			l.Status = status
			changed++
		}
	}
	return changed, nil
}

func (s *memStore) BulkDeleteInactive(_ context.Context, agencyID uint64, deviceIDs []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for _, id := range deviceIDs {
		if l, ok := s.licenses[agencyID][id]; ok && l.Status == model.StatusInactive {
			delete(s.licenses[agencyID], id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *memStore) CountActive(_ context.Context, agencyID uint64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.licenses[agencyID] {
		if l.Status == model.StatusActive {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListByAgency(_ context.Context, agencyID uint64) ([]model.License, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.License, 0, len(s.licenses[agencyID]))
	for _, l := range s.licenses[agencyID] {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActivatedAt.After(out[j].ActivatedAt) })
	return out, nil
}

// memVersionStore implements VersionStore in memory with the same
// exclusivity semantics as the MySQL repository. It is separate from
// memStore because the cascading delete of versions happens at the
// schema level in production, not in the stores.
type memVersionStore struct {
	mu       sync.Mutex
	nextID   uint64
	versions map[uint64]map[string]*model.Version
	seq      int // monotonic publish order, breaks same-instant release ties
}

func newMemVersionStore() *memVersionStore {
	return &memVersionStore{versions: make(map[uint64]map[string]*model.Version)}
}

func (s *memVersionStore) SetLatest(_ context.Context, agencyID uint64, versionNumber, downloadURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.versions[agencyID]
	if rows == nil {
		rows = make(map[string]*model.Version)
		s.versions[agencyID] = rows
	}
	for _, v := range rows {
		v.IsLatest = false
	}
	s.seq++
	release := time.Now().UTC().Add(time.Duration(s.seq) * time.Millisecond)
	if v, ok := rows[versionNumber]; ok {
		v.DownloadURL = downloadURL
		v.ReleaseDate = release
		v.IsLatest = true
		return nil
	}
	s.nextID++
	rows[versionNumber] = &model.Version{
		ID:            s.nextID,
		AgencyID:      agencyID,
		VersionNumber: versionNumber,
		ReleaseDate:   release,
		DownloadURL:   downloadURL,
		IsLatest:      true,
	}
	return nil
}

func (s *memVersionStore) GetLatest(_ context.Context, agencyID uint64) (model.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.versions[agencyID] {
		if v.IsLatest {
			return *v, nil
		}
	}
	return model.Version{}, repository.ErrNoVersion
}

func (s *memVersionStore) List(_ context.Context, agencyID uint64) ([]model.Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Version, 0, len(s.versions[agencyID]))
	for _, v := range s.versions[agencyID] {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReleaseDate.After(out[j].ReleaseDate) })
	return out, nil
}

// activationInput builds a minimal activation for the given device.
func activationInput(deviceID string) repository.ActivationInput {
	return repository.ActivationInput{DeviceID: deviceID, Username: "tester"}
}
