package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apppayment "github.com/kavara/backend/internal/application/payment"
	infrapayment "github.com/kavara/backend/internal/infrastructure/payment"
)

// PaymentCallbackHandler receives YooKassa webhook deliveries. The
// provider retries until it gets a 200, so the handler acknowledges
// everything it could parse; processing failures are retried on the
// next delivery.
type PaymentCallbackHandler struct {
	BaseHandler
	callbacks *apppayment.CallbackService
}

func NewPaymentCallbackHandler(callbacks *apppayment.CallbackService, logger *zap.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{
		BaseHandler: NewBaseHandler(logger),
		callbacks:   callbacks,
	}
}

// Handle processes one webhook delivery.
// POST /api/v1/payments/callback
func (h *PaymentCallbackHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	notification, err := infrapayment.ParseNotification(body)
	if err != nil {
		h.logger.Warn("unparseable payment notification", zap.Error(err))
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.callbacks.HandleNotification(c.Request.Context(), notification); err != nil {
		h.logger.Error("payment notification processing failed",
			zap.String("notification_id", notification.ID),
			zap.String("payment_id", notification.PaymentID),
			zap.Error(err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
