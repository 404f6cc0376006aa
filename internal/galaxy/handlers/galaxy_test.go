package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"galaxy-server/internal/galaxy"
	"galaxy-server/internal/procgen"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMux() *http.ServeMux {
	cfg := galaxy.DefaultConfig()
	cfg.NumStars = 100
	svc := galaxy.NewService(galaxy.New(cfg), slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := NewGalaxyHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/galaxy", h.Summary)
	mux.HandleFunc("GET /api/galaxy/stars", h.Stars)
	mux.HandleFunc("GET /api/galaxy/haze", h.Haze)
	return mux
}

func TestGalaxyHandler_Summary(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/galaxy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var summary galaxy.Summary
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&summary))
	assert.Equal(t, galaxy.DefaultSeed, summary.Seed)
	assert.Equal(t, 100, summary.StarCount)
}

func TestGalaxyHandler_StarsWithCamera(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/galaxy/stars?offset=2&limit=3&camera=0,0,500", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var page galaxy.PageResult[galaxy.StarView]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 100, page.Total)
	assert.Len(t, page.Items, 3)
}

func TestGalaxyHandler_HazeDefaults(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/galaxy/haze", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var page galaxy.PageResult[galaxy.HazeView]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 48, page.Total)
}

func TestGalaxyHandler_BadQuery(t *testing.T) {
	for _, url := range []string{
		"/api/galaxy/stars?offset=abc",
		"/api/galaxy/stars?limit=0",
		"/api/galaxy/stars?offset=-1",
		"/api/galaxy/haze?camera=1,2",
		"/api/galaxy/haze?camera=1,b,3",
	} {
		rec := httptest.NewRecorder()
		newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, url)
	}
}

func TestGalaxyHandler_WrongMethod(t *testing.T) {
	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/galaxy/stars", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseVec3(t *testing.T) {
	v, err := ParseVec3("1.5, -2,3")
	require.NoError(t, err)
	assert.Equal(t, procgen.Vec3{X: 1.5, Y: -2, Z: 3}, v)
}
