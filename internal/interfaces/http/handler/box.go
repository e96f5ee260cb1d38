package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcatalog "github.com/kavara/backend/internal/application/catalog"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

// BoxHandler serves curated box sets.
type BoxHandler struct {
	BaseHandler
	service *appcatalog.BoxService
}

func NewBoxHandler(service *appcatalog.BoxService, logger *zap.Logger) *BoxHandler {
	return &BoxHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// List returns boxes, filtered and paginated.
// GET /api/v1/boxes
func (h *BoxHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := toFilter(req)
	if active := c.Query("active"); active != "" {
		filter.Filters["active"] = active == "true"
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Boxes, resp.Total, resp.Page, resp.PageSize)
}

// Get returns one box by ID.
// GET /api/v1/boxes/:id
func (h *BoxHandler) Get(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Get(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Create adds a box.
// POST /api/v1/admin/boxes
func (h *BoxHandler) Create(c *gin.Context) {
	var req appcatalog.CreateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update modifies a box.
// PUT /api/v1/admin/boxes/:id
func (h *BoxHandler) Update(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err)
		return
	}
	var req appcatalog.UpdateBoxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), uuid.MustParse(idReq.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ReplaceInventory overwrites the per-size stock map of a box.
// PUT /api/v1/admin/boxes/:id/inventory
func (h *BoxHandler) ReplaceInventory(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err)
		return
	}
	var req appcatalog.ReplaceInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.ReplaceInventory(c.Request.Context(), uuid.MustParse(idReq.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete removes a box.
// DELETE /api/v1/admin/boxes/:id
func (h *BoxHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
