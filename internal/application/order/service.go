package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	appinv "github.com/kavara/backend/internal/application/inventory"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service handles the order lifecycle. Creation persists the order and
// settles its stock decrement in one transaction, so an order that would
// oversell any size never comes into existence. Cancellation restores
// stock through the refund path.
type Service struct {
	orderRepo  order.Repository
	txScope    appinv.TransactionScope
	settlement *appinv.SettlementService
	notifier   order.Notifier
	logger     *zap.Logger
}

// NewService creates a new order Service
func NewService(
	orderRepo order.Repository,
	txScope appinv.TransactionScope,
	settlement *appinv.SettlementService,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:  orderRepo,
		txScope:    txScope,
		settlement: settlement,
		logger:     logger,
	}
}

// WithNotifier attaches an order event notifier. Notifications are
// delivered best-effort after the order mutation commits.
func (s *Service) WithNotifier(n order.Notifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) notify(o *order.Order, send func(context.Context, *order.Order) error) {
	if s.notifier == nil {
		return
	}
	clone := *o
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := send(ctx, &clone); err != nil {
			s.logger.Warn("order notification failed",
				zap.String("order_number", clone.OrderNumber),
				zap.Error(err))
		}
	}()
}

// Create validates the checkout payload, persists the order and settles
// the sale atomically. Any settlement failure rolls back the whole
// transaction and the order is never stored.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	number, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generating order number: %w", err)
	}

	o, err := order.NewOrder(number, req.TelegramUserID, strings.TrimSpace(req.CustomerName), req.TotalPrice)
	if err != nil {
		return nil, err
	}
	o.Phone = strings.TrimSpace(req.Phone)
	o.Address = strings.TrimSpace(req.Address)
	o.Comment = strings.TrimSpace(req.Comment)
	o.SelectedSize = strings.TrimSpace(req.SelectedSize)
	o.CartItems = strings.TrimSpace(req.CartItems)

	if req.BoxID != "" {
		id, err := uuid.Parse(req.BoxID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid box id: "+req.BoxID)
		}
		o.BoxID = &id
	}
	if req.ProductID != "" {
		id, err := uuid.Parse(req.ProductID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid product id: "+req.ProductID)
		}
		o.ProductID = &id
	}

	if !o.HasLineItems() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must reference a box, a product or cart items")
	}

	err = s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return fmt.Errorf("saving order: %w", err)
		}
		return s.settlement.ApplyWithin(ctx, repos, o, inventory.DirectionSale)
	})
	if err != nil {
		s.logger.Info("order creation rejected",
			zap.String("order_number", o.OrderNumber),
			zap.Int64("telegram_user_id", o.TelegramUserID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", o.GetID().String()),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("telegram_user_id", o.TelegramUserID))
	s.notify(o, func(ctx context.Context, o *order.Order) error {
		return s.notifier.NotifyNewOrder(ctx, o)
	})

	resp := ToOrderResponse(o)
	return &resp, nil
}

// Cancel moves the order to cancelled and then restores its stock.
// The status transition commits first; a refund failure is logged
// loudly for reconciliation but does not resurrect the order, because
// the refund can be replayed safely at any time.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, o.GetID(), order.StatusCancelled); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	if refundErr := s.settlement.Settle(ctx, o, inventory.DirectionRefund); refundErr != nil {
		s.logger.Error("stock refund failed for cancelled order, replay required",
			zap.String("order_id", o.GetID().String()),
			zap.String("order_number", o.OrderNumber),
			zap.Error(refundErr))
	}

	s.logger.Info("order cancelled",
		zap.String("order_id", o.GetID().String()),
		zap.String("order_number", o.OrderNumber))
	s.notify(o, func(ctx context.Context, o *order.Order) error {
		return s.notifier.NotifyOrderCancelled(ctx, o)
	})

	resp := ToOrderResponse(o)
	return &resp, nil
}

// MarkPaid records a successful payment for the order
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.MarkPaid(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, o.GetID(), order.StatusPaid); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	s.notify(o, func(ctx context.Context, o *order.Order) error {
		return s.notifier.NotifyOrderPaid(ctx, o)
	})
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateStatus moves the order to an arbitrary allowed status. Moving
// to cancelled goes through Cancel so stock is restored.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) (*OrderResponse, error) {
	if status == order.StatusCancelled {
		return s.Cancel(ctx, id)
	}

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.TransitionTo(status); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, o.GetID(), status); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// Get returns one order by id
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByNumber returns one order by its human-readable number
func (s *Service) GetByNumber(ctx context.Context, number string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// ListByUser returns the orders of one Telegram user, paginated
func (s *Service) ListByUser(ctx context.Context, telegramUserID int64, filter shared.Filter) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindByTelegramUser(ctx, telegramUserID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing user orders: %w", err)
	}
	resp := ToOrderListResponse(orders, total, filter.Page, filter.PageSize)
	return &resp, nil
}

// List returns all orders, paginated
func (s *Service) List(ctx context.Context, filter shared.Filter) (*OrderListResponse, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	resp := ToOrderListResponse(orders, total, filter.Page, filter.PageSize)
	return &resp, nil
}
