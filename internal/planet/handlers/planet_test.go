package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"galaxy-server/internal/events"
	"galaxy-server/internal/planet"
	"galaxy-server/internal/shared/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlanetMux(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := planet.NewService(planet.NewMemoryStore(), cache.NewMemory(0), time.Minute, events.NewBus(), logger)
	t.Cleanup(svc.Close)
	h := NewPlanetHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/planets", h.List)
	mux.HandleFunc("GET /api/planets/editing", h.Editing)
	mux.HandleFunc("GET /api/planets/export", h.Export)
	mux.HandleFunc("POST /api/planets", h.Create)
	mux.HandleFunc("PUT /api/planets/{name}", h.Update)
	mux.HandleFunc("DELETE /api/planets/{name}", h.Delete)
	mux.HandleFunc("DELETE /api/planets", h.Clear)
	mux.HandleFunc("POST /api/planets/{name}/confirm", h.Confirm)
	mux.HandleFunc("POST /api/planets/edit-all", h.EditAll)
	mux.HandleFunc("POST /api/planets/import", h.Import)
	return mux
}

func do(mux http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestPlanetHandler_CRUD(t *testing.T) {
	mux := newPlanetMux(t)

	rec := do(mux, http.MethodPost, "/api/planets",
		`{"name":"Cadia","faction":"Imperium","color":"blue","position":{"x":1,"y":2,"z":3},"edit":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created planet.Planet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.True(t, created.Editing)
	assert.Equal(t, planet.StatusActive, created.Status)

	rec = do(mux, http.MethodGet, "/api/planets/editing", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(mux, http.MethodPost, "/api/planets/Cadia/confirm", `{"x":5,"y":6,"z":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(mux, http.MethodGet, "/api/planets/editing", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(mux, http.MethodPut, "/api/planets/Cadia",
		`{"name":"Cadia","faction":"Imperium","status":"destroyed","position":{"x":5,"y":6,"z":7}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(mux, http.MethodGet, "/api/planets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var planets []planet.Planet
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&planets))
	require.Len(t, planets, 1)
	assert.Equal(t, planet.StatusDestroyed, planets[0].Status)

	rec = do(mux, http.MethodDelete, "/api/planets/Cadia", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(mux, http.MethodDelete, "/api/planets/Cadia", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlanetHandler_Errors(t *testing.T) {
	mux := newPlanetMux(t)

	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/api/planets", `{"name":`).Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/api/planets", `{"name":"X","color":"teal"}`).Code)
	assert.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/planets", `{"name":"X"}`).Code)
	assert.Equal(t, http.StatusConflict, do(mux, http.MethodPost, "/api/planets", `{"name":"X"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPut, "/api/planets/Nope", `{"name":"Nope","faction":"Other"}`).Code)

	huge := `{"name":"` + strings.Repeat("a", maxPlanetBody) + `"}`
	assert.Equal(t, http.StatusRequestEntityTooLarge, do(mux, http.MethodPost, "/api/planets", huge).Code)
}

func TestPlanetHandler_ExportImportClear(t *testing.T) {
	mux := newPlanetMux(t)
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/planets", `{"name":"A"}`).Code)

	rec := do(mux, http.MethodGet, "/api/planets/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "galaxy_export_")

	var doc planet.ExportDocument
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, planet.ExportVersion, doc.Version)
	require.Len(t, doc.Planets, 1)

	rec = do(mux, http.MethodDelete, "/api/planets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/api/planets/import",
		`{"version":"1.0.0","export_date":"2025-01-01T00:00:00Z","planets":[{"name":"A"},{"name":"B"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/api/planets/edit-all", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":2}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/api/planets/import", `{"version":"0.9","planets":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
