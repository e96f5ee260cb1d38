package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/payment"
	"github.com/kavara/backend/internal/domain/shared"
)

// CheckoutService opens provider payments for pending orders and records
// the returned identifiers on the order so webhook deliveries can be
// matched back to it.
type CheckoutService struct {
	orderRepo order.Repository
	gateway   payment.Gateway
	returnURL string
	currency  string
	logger    *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orderRepo order.Repository,
	gateway payment.Gateway,
	returnURL string,
	currency string,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orderRepo: orderRepo,
		gateway:   gateway,
		returnURL: returnURL,
		currency:  currency,
		logger:    logger,
	}
}

// CheckoutResponse carries what the storefront needs to send the
// customer to the provider's payment page.
type CheckoutResponse struct {
	OrderID         string `json:"order_id"`
	OrderNumber     string `json:"order_number"`
	PaymentID       string `json:"payment_id"`
	ConfirmationURL string `json:"confirmation_url"`
}

// CreatePayment opens a payment for a pending order. Calling it again
// for an order that already has a payment returns the stored
// confirmation URL instead of opening a second payment.
func (s *CheckoutService) CreatePayment(ctx context.Context, orderID uuid.UUID) (*CheckoutResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.Status != order.StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE",
			"Payments can only be created for pending orders")
	}

	if o.PaymentID != "" {
		return &CheckoutResponse{
			OrderID:         o.ID.String(),
			OrderNumber:     o.OrderNumber,
			PaymentID:       o.PaymentID,
			ConfirmationURL: o.PaymentURL,
		}, nil
	}

	resp, err := s.gateway.CreatePayment(ctx, &payment.CreatePaymentRequest{
		OrderID:     o.ID.String(),
		OrderNumber: o.OrderNumber,
		Amount:      o.TotalPrice,
		Currency:    s.currency,
		Description: fmt.Sprintf("Order %s", o.OrderNumber),
		ReturnURL:   s.returnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider payment: %w", err)
	}

	o.AttachPayment(resp.PaymentID, resp.ConfirmationURL)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("saving payment identifiers: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("order_number", o.OrderNumber),
		zap.String("payment_id", resp.PaymentID))

	return &CheckoutResponse{
		OrderID:         o.ID.String(),
		OrderNumber:     o.OrderNumber,
		PaymentID:       resp.PaymentID,
		ConfirmationURL: resp.ConfirmationURL,
	}, nil
}
