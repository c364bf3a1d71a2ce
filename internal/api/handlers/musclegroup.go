package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/service"
)

// MuscleGroupHandler handles muscle group endpoints
type MuscleGroupHandler struct {
	muscleGroupService *service.MuscleGroupService
	logger             *zap.Logger
}

// NewMuscleGroupHandler creates a new muscle group handler
func NewMuscleGroupHandler(muscleGroupService *service.MuscleGroupService, logger *zap.Logger) *MuscleGroupHandler {
	return &MuscleGroupHandler{
		muscleGroupService: muscleGroupService,
		logger:             logger,
	}
}

// List returns a page of muscle groups
func (h *MuscleGroupHandler) List(c *gin.Context) {
	query, ok := bindPaging(c)
	if !ok {
		return
	}

	respond(c, h.muscleGroupService.List(c.Request.Context(), service.ListRequest{
		Caller: middleware.CurrentIdentity(c),
		Query:  query,
	}))
}

// Get returns a single muscle group by id
func (h *MuscleGroupHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respond(c, h.muscleGroupService.Get(c.Request.Context(), id))
}

// Create adds a muscle group (admin only)
func (h *MuscleGroupHandler) Create(c *gin.Context) {
	var req service.CreateMuscleGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)

	respondCreated(c, h.muscleGroupService.Create(c.Request.Context(), req))
}

// Update replaces a muscle group (admin only)
func (h *MuscleGroupHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateMuscleGroupRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)
	req.ID = id

	respond(c, h.muscleGroupService.Update(c.Request.Context(), req))
}

// Delete removes a muscle group (admin only)
func (h *MuscleGroupHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respondNoContent(c, h.muscleGroupService.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id))
}
