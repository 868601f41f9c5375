package handlers

import (
	"net/http"

	"github.com/floorsight/backend/pkg/database"
	"github.com/floorsight/backend/pkg/redis"
)

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db    *database.DB
	redis *redis.Client
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *database.DB, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: rdb}
}

// Get returns overall health. The response is 503 when the database is
// unreachable; a disabled or unreachable cache only degrades the report.
// GET /health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	dbHealth, err := h.db.HealthCheck(r.Context())

	status := http.StatusOK
	overall := "ok"
	if err != nil || !dbHealth.Healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	respondJSON(w, status, map[string]interface{}{
		"status":   overall,
		"service":  "floorsight-api",
		"database": dbHealth,
		"cache":    map[string]bool{"enabled": h.redis.Enabled()},
	})
}
