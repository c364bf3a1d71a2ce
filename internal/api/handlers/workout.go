package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/service"
)

// WorkoutHandler handles workout endpoints
type WorkoutHandler struct {
	workoutService *service.WorkoutService
	logger         *zap.Logger
}

// NewWorkoutHandler creates a new workout handler
func NewWorkoutHandler(workoutService *service.WorkoutService, logger *zap.Logger) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		logger:         logger,
	}
}

// List returns a page of the caller's workouts, entries omitted
func (h *WorkoutHandler) List(c *gin.Context) {
	query, ok := bindPaging(c)
	if !ok {
		return
	}

	respond(c, h.workoutService.List(c.Request.Context(), service.ListRequest{
		Caller: middleware.CurrentIdentity(c),
		Query:  query,
	}))
}

// Get returns a single workout with its entries
func (h *WorkoutHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respond(c, h.workoutService.Get(c.Request.Context(), middleware.CurrentIdentity(c), id))
}

// Create records a workout owned by the caller
func (h *WorkoutHandler) Create(c *gin.Context) {
	var req service.CreateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)

	respondCreated(c, h.workoutService.Create(c.Request.Context(), req))
}

// Update replaces a workout and its entries
func (h *WorkoutHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateWorkoutRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)
	req.ID = id

	respond(c, h.workoutService.Update(c.Request.Context(), req))
}

// Delete removes a workout and its entries
func (h *WorkoutHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respondNoContent(c, h.workoutService.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id))
}
