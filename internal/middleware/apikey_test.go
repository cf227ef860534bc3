package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/model"
	"github.com/PeakPoint-Enterprise/timesheet-platform-backend/internal/repository"
)

type staticResolver struct {
	agencies map[string]model.Agency
}

func (r *staticResolver) GetByAPIKey(_ context.Context, key string) (model.Agency, error) {
	if a, ok := r.agencies[key]; ok {
		return a, nil
	}
	return model.Agency{}, repository.ErrAgencyNotFound
}

func runAPIKeyAuth(t *testing.T, resolver AgencyResolver, key string) (*httptest.ResponseRecorder, *model.Agency) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *model.Agency
	next := func(c echo.Context) error {
		if a, ok := AgencyFromContext(c); ok {
			resolved = &a
		}
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, APIKeyAuth(resolver)(next)(c))
	return rec, resolved
}

func TestAPIKeyAuthResolvesAgency(t *testing.T) {
	resolver := &staticResolver{agencies: map[string]model.Agency{
		"key-acme": {ID: 7, Name: "Acme", APIKey: "key-acme"},
	}}

	rec, resolved := runAPIKeyAuth(t, resolver, "key-acme")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resolved)
	assert.Equal(t, uint64(7), resolved.ID)
	assert.Equal(t, "Acme", resolved.Name)
}

// Missing and unknown keys produce the same response so a caller
// cannot probe which keys exist.
func TestAPIKeyAuthUniformRejection(t *testing.T) {
	resolver := &staticResolver{agencies: map[string]model.Agency{}}

	recMissing, resolved := runAPIKeyAuth(t, resolver, "")
	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusForbidden, recMissing.Code)

	recUnknown, resolved := runAPIKeyAuth(t, resolver, "key-ghost")
	assert.Nil(t, resolved)
	assert.Equal(t, http.StatusForbidden, recUnknown.Code)

	assert.Equal(t, recMissing.Body.String(), recUnknown.Body.String())
}

func TestAgencyFromContextWithoutMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	_, ok := AgencyFromContext(c)
	assert.False(t, ok)
}
