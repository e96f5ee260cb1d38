package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	apporder "github.com/kavara/backend/internal/application/order"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/payment"
	"github.com/kavara/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultNotificationTTL bounds how long a processed webhook delivery
// is remembered for deduplication.
const DefaultNotificationTTL = 24 * time.Hour

const (
	eventPaymentSucceeded = "payment.succeeded"
	eventPaymentCanceled  = "payment.canceled"
)

// CallbackService reacts to payment provider webhooks. Providers retry
// deliveries until acknowledged, so every notification is deduplicated
// before it can touch an order. A successful payment moves the order to
// paid; a cancelled payment cancels the order, which releases its
// reserved stock.
type CallbackService struct {
	orderRepo    order.Repository
	orderService *apporder.Service
	dedup        shared.IdempotencyStore
	logger       *zap.Logger
}

// NewCallbackService creates a new CallbackService
func NewCallbackService(
	orderRepo order.Repository,
	orderService *apporder.Service,
	dedup shared.IdempotencyStore,
	logger *zap.Logger,
) *CallbackService {
	return &CallbackService{
		orderRepo:    orderRepo,
		orderService: orderService,
		dedup:        dedup,
		logger:       logger,
	}
}

// HandleNotification processes one verified webhook delivery
func (s *CallbackService) HandleNotification(ctx context.Context, n *payment.Notification) error {
	fresh, err := s.dedup.MarkProcessed(ctx, n.ID, DefaultNotificationTTL)
	if err != nil {
		return fmt.Errorf("deduplicating notification: %w", err)
	}
	if !fresh {
		s.logger.Info("duplicate payment notification ignored",
			zap.String("notification_id", n.ID),
			zap.String("payment_id", n.PaymentID))
		return nil
	}

	o, err := s.orderRepo.FindByPaymentID(ctx, n.PaymentID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("payment notification for unknown order",
				zap.String("payment_id", n.PaymentID),
				zap.String("event", n.Event))
			return nil
		}
		return err
	}

	switch n.Event {
	case eventPaymentSucceeded:
		if _, err := s.orderService.MarkPaid(ctx, o.GetID()); err != nil {
			return fmt.Errorf("marking order %s paid: %w", o.OrderNumber, err)
		}
		s.logger.Info("order paid",
			zap.String("order_number", o.OrderNumber),
			zap.String("payment_id", n.PaymentID))
	case eventPaymentCanceled:
		if _, err := s.orderService.Cancel(ctx, o.GetID()); err != nil {
			return fmt.Errorf("cancelling order %s: %w", o.OrderNumber, err)
		}
		s.logger.Info("order cancelled after failed payment",
			zap.String("order_number", o.OrderNumber),
			zap.String("payment_id", n.PaymentID))
	default:
		s.logger.Info("ignoring payment event",
			zap.String("event", n.Event),
			zap.String("payment_id", n.PaymentID))
	}
	return nil
}
