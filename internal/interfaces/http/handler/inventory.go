package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appinv "github.com/kavara/backend/internal/application/inventory"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

// InventoryHandler exposes the stock movement audit trail to admins.
type InventoryHandler struct {
	BaseHandler
	history *appinv.HistoryService
}

func NewInventoryHandler(history *appinv.HistoryService, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: NewBaseHandler(logger),
		history:     history,
	}
}

// ListHistory returns stock movements across all entities.
// GET /api/v1/admin/inventory/history
func (h *InventoryHandler) ListHistory(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := toFilter(req)
	if op := c.Query("operation_type"); op != "" {
		filter.Filters["operation_type"] = op
	}
	if kind := c.Query("entity_kind"); kind != "" {
		filter.Filters["entity_kind"] = kind
	}

	resp, err := h.history.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Entries, resp.Total, resp.Page, resp.PageSize)
}

// ListEntityHistory returns the stock movements of one product or box.
// GET /api/v1/admin/inventory/history/entity/:kind/:id
func (h *InventoryHandler) ListEntityHistory(c *gin.Context) {
	kind := catalog.EntityKind(c.Param("kind"))
	if !kind.IsValid() {
		h.Error(c, dto.ErrCodeInvalidInput, "entity kind must be box or product")
		return
	}
	entityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "invalid entity id")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.history.ListByEntity(c.Request.Context(), kind, entityID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Entries, resp.Total, resp.Page, resp.PageSize)
}

// ListOrderHistory returns every stock movement caused by one order.
// GET /api/v1/admin/inventory/history/order/:id
func (h *InventoryHandler) ListOrderHistory(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	entries, err := h.history.ListByOrder(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
