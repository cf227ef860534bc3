package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLatestVersion(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := NewAdminHandler(ms, ms, ms, vs, nil)

	body := `{"version_number":"2.4.0","download_url":"https://downloads.example.com/2.4.0"}`
	c, rec := newAdminContext(t, http.MethodPost, body, fmt.Sprint(agency.ID))
	require.NoError(t, h.SetLatestVersion(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2.4.0", decodeBody(t, rec)["version_number"])

	latest, err := vs.GetLatest(nil, agency.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.4.0", latest.VersionNumber)
	assert.True(t, latest.IsLatest)
}

// Publishing a second version moves the latest pointer; exactly one
// version carries it at any time.
func TestSetLatestVersionMovesPointer(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := NewAdminHandler(ms, ms, ms, vs, nil)

	for _, v := range []string{"2.4.0", "2.5.0"} {
		body := fmt.Sprintf(`{"version_number":%q,"download_url":"https://downloads.example.com/%s"}`, v, v)
		c, rec := newAdminContext(t, http.MethodPost, body, fmt.Sprint(agency.ID))
		require.NoError(t, h.SetLatestVersion(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	latest, err := vs.GetLatest(nil, agency.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.5.0", latest.VersionNumber)

	versions, err := vs.List(nil, agency.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	latestCount := 0
	for _, v := range versions {
		if v.IsLatest {
			latestCount++
		}
	}
	assert.Equal(t, 1, latestCount)
}

// Re-publishing an existing version number updates it in place instead
// of creating a sibling row.
func TestSetLatestVersionRepublish(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := NewAdminHandler(ms, ms, ms, vs, nil)

	for _, url := range []string{"https://old.example.com/2.4.0", "https://new.example.com/2.4.0"} {
		body := fmt.Sprintf(`{"version_number":"2.4.0","download_url":%q}`, url)
		c, rec := newAdminContext(t, http.MethodPost, body, fmt.Sprint(agency.ID))
		require.NoError(t, h.SetLatestVersion(c))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	versions, err := vs.List(nil, agency.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "https://new.example.com/2.4.0", versions[0].DownloadURL)
	assert.True(t, versions[0].IsLatest)
}

func TestSetLatestVersionValidation(t *testing.T) {
	ms := newMemStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := newAdminHandlerForTest(ms)

	c, rec := newAdminContext(t, http.MethodPost, `{"version_number":"2.4.0"}`, fmt.Sprint(agency.ID))
	require.NoError(t, h.SetLatestVersion(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newAdminContext(t, http.MethodPost, `{"download_url":"https://downloads.example.com/2.4.0"}`, fmt.Sprint(agency.ID))
	require.NoError(t, h.SetLatestVersion(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListVersionsNewestFirst(t *testing.T) {
	ms := newMemStore()
	vs := newMemVersionStore()
	agency := ms.seedAgency("Acme", "key-acme", 5)
	h := NewAdminHandler(ms, ms, ms, vs, nil)

	for _, v := range []string{"2.3.0", "2.4.0", "2.5.0"} {
		body := fmt.Sprintf(`{"version_number":%q,"download_url":"https://downloads.example.com/%s"}`, v, v)
		c, _ := newAdminContext(t, http.MethodPost, body, fmt.Sprint(agency.ID))
		require.NoError(t, h.SetLatestVersion(c))
	}

	c, rec := newAdminContext(t, http.MethodGet, "", fmt.Sprint(agency.ID))
	require.NoError(t, h.ListVersions(c))
	require.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(t, rec)
	list, ok := out["versions"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, "2.5.0", list[0].(map[string]interface{})["version_number"])
	assert.Equal(t, "2.3.0", list[2].(map[string]interface{})["version_number"])
}
