package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/payment"
	"github.com/kavara/backend/internal/domain/shared"
)

type stubGateway struct {
	created  []*payment.CreatePaymentRequest
	response *payment.CreatePaymentResponse
	err      error
}

func (g *stubGateway) CreatePayment(_ context.Context, req *payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.created = append(g.created, req)
	return g.response, nil
}

func (g *stubGateway) GetPayment(_ context.Context, paymentID string) (*payment.CreatePaymentResponse, error) {
	return g.response, nil
}

func newCheckoutFixture(t *testing.T) (*CheckoutService, *stubOrderRepo, *stubGateway, *order.Order) {
	t.Helper()

	orders := &stubOrderRepo{byID: make(map[uuid.UUID]*order.Order)}
	gateway := &stubGateway{response: &payment.CreatePaymentResponse{
		PaymentID:       "pay-77",
		ConfirmationURL: "https://yookassa.ru/checkout/pay-77",
		Status:          payment.StatusPending,
	}}

	o, err := order.NewOrder("KV-2026-0005", 42, "Customer", decimal.NewFromInt(3500))
	require.NoError(t, err)
	require.NoError(t, orders.Save(context.Background(), o))

	svc := NewCheckoutService(orders, gateway, "https://t.me/kavara_shop", "RUB", zap.NewNop())
	return svc, orders, gateway, o
}

func TestCheckoutService_CreatePayment(t *testing.T) {
	t.Run("opens payment and stores identifiers", func(t *testing.T) {
		svc, orders, gateway, o := newCheckoutFixture(t)

		resp, err := svc.CreatePayment(context.Background(), o.GetID())
		require.NoError(t, err)

		assert.Equal(t, "pay-77", resp.PaymentID)
		assert.Equal(t, "https://yookassa.ru/checkout/pay-77", resp.ConfirmationURL)
		assert.Equal(t, o.OrderNumber, resp.OrderNumber)

		require.Len(t, gateway.created, 1)
		req := gateway.created[0]
		assert.Equal(t, o.OrderNumber, req.OrderNumber)
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(3500)))
		assert.Equal(t, "RUB", req.Currency)
		assert.Equal(t, "https://t.me/kavara_shop", req.ReturnURL)

		saved, err := orders.FindByID(context.Background(), o.GetID())
		require.NoError(t, err)
		assert.Equal(t, "pay-77", saved.PaymentID)
		assert.Equal(t, "https://yookassa.ru/checkout/pay-77", saved.PaymentURL)
	})

	t.Run("repeated call reuses the existing payment", func(t *testing.T) {
		svc, _, gateway, o := newCheckoutFixture(t)

		first, err := svc.CreatePayment(context.Background(), o.GetID())
		require.NoError(t, err)
		second, err := svc.CreatePayment(context.Background(), o.GetID())
		require.NoError(t, err)

		assert.Equal(t, first.PaymentID, second.PaymentID)
		assert.Len(t, gateway.created, 1)
	})

	t.Run("rejects non-pending orders", func(t *testing.T) {
		svc, orders, _, o := newCheckoutFixture(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, orders.Save(context.Background(), o))

		_, err := svc.CreatePayment(context.Background(), o.GetID())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc, _, _, _ := newCheckoutFixture(t)

		_, err := svc.CreatePayment(context.Background(), uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("gateway failure does not touch the order", func(t *testing.T) {
		svc, orders, gateway, o := newCheckoutFixture(t)
		gateway.err = errors.New("provider unavailable")

		_, err := svc.CreatePayment(context.Background(), o.GetID())
		require.Error(t, err)

		saved, err := orders.FindByID(context.Background(), o.GetID())
		require.NoError(t, err)
		assert.Empty(t, saved.PaymentID)
	})
}
