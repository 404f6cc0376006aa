package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"galaxy-server/internal/shared/database"
	"galaxy-server/internal/shared/redis"
	"galaxy-server/internal/shared/response"
)

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
	statusDisabled     = "disabled"

	pingTimeout = 2 * time.Second
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
}

type pingFunc func(ctx context.Context) error

type HealthHandler struct {
	db    pingFunc
	redis pingFunc
}

// NewHealthHandler reports a nil db or redis client as disabled.
func NewHealthHandler(db *database.DB, rdb *redis.Client) *HealthHandler {
	h := &HealthHandler{}
	if db != nil {
		h.db = db.PingContext
	}
	if rdb != nil {
		h.redis = rdb.Ping
	}
	return h
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  check(ctx, logger, "database", h.db),
		Redis:     check(ctx, logger, "redis", h.redis),
	}
	if resp.Database == statusDisconnected || resp.Redis == statusDisconnected {
		resp.Status = "degraded"
	}

	response.Success(w, http.StatusOK, resp)
}

func check(ctx context.Context, logger *slog.Logger, name string, ping pingFunc) string {
	if ping == nil {
		return statusDisabled
	}
	if err := ping(ctx); err != nil {
		logger.Warn("Dependency ping failed", "dependency", name, "error", err)
		return statusDisconnected
	}
	return statusConnected
}
