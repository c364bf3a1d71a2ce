package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *pgxpool.Pool, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services,omitempty"`
}

// Health reports process liveness and database reachability
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	services := map[string]string{}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check: postgres unreachable", zap.Error(err))
		services["postgres"] = "unreachable"
		status = http.StatusServiceUnavailable
	} else {
		services["postgres"] = "ok"
	}

	resp := HealthResponse{Status: "ok", Services: services}
	if status != http.StatusOK {
		resp.Status = "degraded"
	}
	c.JSON(status, resp)
}
