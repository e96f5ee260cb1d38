package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apporder "github.com/kavara/backend/internal/application/order"
	apppayment "github.com/kavara/backend/internal/application/payment"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/interfaces/http/dto"
)

// OrderHandler serves order creation and lookups for the storefront
// plus the order management endpoints for admins.
type OrderHandler struct {
	BaseHandler
	service  *apporder.Service
	checkout *apppayment.CheckoutService
}

func NewOrderHandler(service *apporder.Service, checkout *apppayment.CheckoutService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
		checkout:    checkout,
	}
}

// Create places an order. Stock is settled atomically with the order
// itself, so a response with success=true means the stock is reserved.
// POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	var req apporder.CreateOrderRequest
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

// Get returns one order by ID.
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
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

// GetByNumber returns one order by its human-readable number.
// GET /api/v1/orders/number/:number
func (h *OrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.Error(c, dto.ErrCodeInvalidInput, "order number is required")
		return
	}

	resp, err := h.service.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ListByUser returns the orders of one Telegram user.
// GET /api/v1/orders/user/:telegram_user_id
func (h *OrderHandler) ListByUser(c *gin.Context) {
	telegramUserID, err := strconv.ParseInt(c.Param("telegram_user_id"), 10, 64)
	if err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "invalid telegram user id")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.ListByUser(c.Request.Context(), telegramUserID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Orders, resp.Total, resp.Page, resp.PageSize)
}

// CreatePayment opens a provider payment for a pending order and
// returns the confirmation URL.
// POST /api/v1/orders/:id/payment
func (h *OrderHandler) CreatePayment(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.checkout.CreatePayment(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns all orders.
// GET /api/v1/admin/orders
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	filter := toFilter(req)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Orders, resp.Total, resp.Page, resp.PageSize)
}

// UpdateStatusRequest carries the target order status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,order_status"`
}

// UpdateStatus moves an order to another status. Cancelling through
// this endpoint restores the order's reserved stock.
// PATCH /api/v1/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, err)
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), uuid.MustParse(idReq.ID), order.Status(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel cancels an order and refunds its stock.
// POST /api/v1/admin/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, err)
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
