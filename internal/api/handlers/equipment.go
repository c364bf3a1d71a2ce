package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/repstack/repstack/internal/api/middleware"
	"github.com/repstack/repstack/internal/service"
)

// EquipmentHandler handles equipment endpoints
type EquipmentHandler struct {
	equipmentService *service.EquipmentService
	logger           *zap.Logger
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipmentService *service.EquipmentService, logger *zap.Logger) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

// List returns a page of equipment
func (h *EquipmentHandler) List(c *gin.Context) {
	query, ok := bindPaging(c)
	if !ok {
		return
	}

	respond(c, h.equipmentService.List(c.Request.Context(), service.ListRequest{
		Caller: middleware.CurrentIdentity(c),
		Query:  query,
	}))
}

// Get returns a single piece of equipment by id
func (h *EquipmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respond(c, h.equipmentService.Get(c.Request.Context(), id))
}

// Create adds a piece of equipment (admin only)
func (h *EquipmentHandler) Create(c *gin.Context) {
	var req service.CreateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)

	respondCreated(c, h.equipmentService.Create(c.Request.Context(), req))
}

// Update replaces a piece of equipment (admin only)
func (h *EquipmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req service.UpdateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Caller = middleware.CurrentIdentity(c)
	req.ID = id

	respond(c, h.equipmentService.Update(c.Request.Context(), req))
}

// Delete removes a piece of equipment (admin only)
func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	respondNoContent(c, h.equipmentService.Delete(c.Request.Context(), middleware.CurrentIdentity(c), id))
}
