package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"galaxy-server/internal/shared/errors"
)

// ErrorResponse is the JSON envelope for every failed API call.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type errorPolicy struct {
	status int
	level  slog.Level
	msg    string
}

var internalPolicy = errorPolicy{http.StatusInternalServerError, slog.LevelError, "Internal server error"}

var policies = map[errors.ErrorType]errorPolicy{
	errors.ErrorTypeNotFound:         {http.StatusNotFound, slog.LevelDebug, "Resource not found"},
	errors.ErrorTypeValidation:       {http.StatusBadRequest, slog.LevelDebug, "Client error"},
	errors.ErrorTypeMethodNotAllowed: {http.StatusMethodNotAllowed, slog.LevelDebug, "Client error"},
	errors.ErrorTypePayloadTooLarge:  {http.StatusRequestEntityTooLarge, slog.LevelDebug, "Client error"},
	errors.ErrorTypeConflict:         {http.StatusConflict, slog.LevelInfo, "Conflict"},
	errors.ErrorTypeUnauthorized:     {http.StatusUnauthorized, slog.LevelWarn, "Authorization error"},
	errors.ErrorTypeForbidden:        {http.StatusForbidden, slog.LevelWarn, "Authorization error"},
	errors.ErrorTypeRateLimited:      {http.StatusTooManyRequests, slog.LevelWarn, "Rate limit exceeded"},
	errors.ErrorTypeExternal:         {http.StatusServiceUnavailable, slog.LevelError, "External service error"},
	errors.ErrorTypeInternal:         internalPolicy,
}

func policyFor(errorType errors.ErrorType) errorPolicy {
	if p, ok := policies[errorType]; ok {
		return p
	}
	return internalPolicy
}

// Error logs err and writes its JSON envelope. Handlers and middleware report
// failures only through here, so each failed request is logged once.
// Untyped and internal errors reach the client as a generic message.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	errorType := errors.GetType(err)
	policy := policyFor(errorType)

	logger.Log(r.Context(), policy.level, policy.msg,
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr,
		"error_type", errorType,
		"status_code", policy.status,
		"error", err,
	)

	message := err.Error()
	if policy.status == http.StatusInternalServerError {
		message = "internal server error"
	}

	writeJSON(w, policy.status, ErrorResponse{
		Error:   string(errorType),
		Message: message,
		Code:    policy.status,
	})
}

// Success writes data as JSON; a nil data sends only the status.
func Success(w http.ResponseWriter, statusCode int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		return
	}
	writeJSON(w, statusCode, data)
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// the status line is already out, nothing useful to do on failure
	_ = json.NewEncoder(w).Encode(v)
}
