package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersionNonePublished(t *testing.T) {
	ms := newMemStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := NewClientHandler(ms, newMemVersionStore(), nil, nil)

	c, rec := newClientContext(t, http.MethodGet, "", agency)
	require.NoError(t, h.LatestVersion(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, false, out["available"])
	assert.Equal(t, "no version published", out["message"])
}

func TestLatestVersionReturnsCurrentPointer(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	require.NoError(t, vs.SetLatest(nil, agency.ID, "2.4.0", "https://downloads.example.com/2.4.0"))
	require.NoError(t, vs.SetLatest(nil, agency.ID, "2.5.0", "https://downloads.example.com/2.5.0"))
	h := NewClientHandler(ms, vs, nil, nil)

	c, rec := newClientContext(t, http.MethodGet, "", agency)
	require.NoError(t, h.LatestVersion(c))
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	assert.Equal(t, true, out["available"])
	assert.Equal(t, "2.5.0", out["version_number"])
	assert.Equal(t, "https://downloads.example.com/2.5.0", out["download_url"])
	assert.NotEmpty(t, out["release_date"])
}

// Versions are tenant-scoped: another agency's publish must stay
// invisible.
func TestLatestVersionScopedToAgency(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	acme := ms.seedAgency("Acme", "key-acme", 5)
	beta := ms.seedAgency("Beta", "key-beta", 5)
	require.NoError(t, vs.SetLatest(nil, acme.ID, "2.5.0", "https://downloads.example.com/2.5.0"))
	h := NewClientHandler(ms, vs, nil, nil)

	c, rec := newClientContext(t, http.MethodGet, "", beta)
	require.NoError(t, h.LatestVersion(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["available"])
}
