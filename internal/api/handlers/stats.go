package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/service"
)

// StatsHandler handles training analytics endpoints
type StatsHandler struct {
	statsService *service.StatsService
	logger       *zap.Logger
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		logger:       logger,
	}
}

// WeeklyVolume returns the caller's lifted volume aggregated per week
func (h *StatsHandler) WeeklyVolume(c *gin.Context) {
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))

	respond(c, h.statsService.WeeklyVolume(c.Request.Context(), middleware.CurrentIdentity(c), weeks))
}

// TopExercises returns the caller's most performed exercises by set count
func (h *StatsHandler) TopExercises(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	respond(c, h.statsService.TopExercises(c.Request.Context(), middleware.CurrentIdentity(c), limit))
}
