package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/service"
)

// ExerciseHandler handles exercise endpoints
type ExerciseHandler struct {
	exerciseService *service.ExerciseService
	logger          *zap.Logger
}

// NewExerciseHandler creates a new exercise handler
func NewExerciseHandler(exerciseService *service.ExerciseService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		logger:          logger,
	}
}

// List returns a page of the caller's exercises
func (h *ExerciseHandler) List(c *gin.Context) {
	query, ok := bindPaging(c)
	if !ok {
		return
	}

	respond(c, h.exerciseService.List(c.Request.Context(), service.ListRequest{
		Caller: middleware.CurrentIdentity(c),
		Query:  query,
	}))
}

// Get returns a single exercise by id
func (h *ExerciseHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respond(c, h.exerciseService.Get(c.Request.Context(), middleware.CurrentIdentity(c), id))
}

// Create adds an exercise owned by the caller
func (h *ExerciseHandler) Create(c *gin.Context) {
	var req service.CreateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)

	respondCreated(c, h.exerciseService.Create(c.Request.Context(), req))
}

// Update replaces an exercise
func (h *ExerciseHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateExerciseRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)
	req.ID = id

	respond(c, h.exerciseService.Update(c.Request.Context(), req))
}

// Delete removes an exercise
func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respondNoContent(c, h.exerciseService.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id))
}
