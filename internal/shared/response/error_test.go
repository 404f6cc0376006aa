package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"galaxy-server/internal/shared/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestError_MapsTypeToStatus(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{errors.NotFoundf("planet %q not found", "Terra"), http.StatusNotFound},
		{errors.Validation("bad"), http.StatusBadRequest},
		{errors.Conflictf("dup"), http.StatusConflict},
		{errors.Unauthorized("who"), http.StatusUnauthorized},
		{errors.Forbidden("no"), http.StatusForbidden},
		{errors.MethodNotAllowed("PATCH"), http.StatusMethodNotAllowed},
		{errors.PayloadTooLargef("too big"), http.StatusRequestEntityTooLarge},
		{errors.RateLimited("slow"), http.StatusTooManyRequests},
		{errors.External("down"), http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/planets", nil)

		Error(rec, req, discardLogger(), tt.err)

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/planets", nil)

	Error(rec, req, discardLogger(), errors.WrapInternal("query failed", fmt.Errorf("password=hunter2")))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "internal", body.Error)
	assert.Equal(t, "internal server error", body.Message)
	assert.Equal(t, http.StatusInternalServerError, body.Code)
}

func TestError_LogLevelFollowsType(t *testing.T) {
	tests := []struct {
		err   error
		level string
	}{
		{errors.NotFoundf("planet %q not found", "Terra"), "DEBUG"},
		{errors.Conflictf("dup"), "INFO"},
		{errors.Forbidden("no"), "WARN"},
		{errors.RateLimited("slow"), "WARN"},
		{fmt.Errorf("boom"), "ERROR"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		req := httptest.NewRequest(http.MethodPost, "/api/planets", nil)

		Error(httptest.NewRecorder(), req, logger, tt.err)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), buf.String())
		assert.Equal(t, tt.level, entry["level"], tt.err.Error())
		assert.Equal(t, "/api/planets", entry["path"])
		assert.Equal(t, tt.err.Error(), entry["error"])
	}
}

func TestSuccess_NoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, http.StatusCreated, map[string]int{"count": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"count":3}`, rec.Body.String())
}
