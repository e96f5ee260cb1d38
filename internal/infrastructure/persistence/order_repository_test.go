package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(number, 100500, "Anna", decimal.NewFromInt(2500))
	require.NoError(t, err)
	productID := uuid.New()
	o.ProductID = &productID
	o.SelectedSize = "M"
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := newTestOrder(t, "KV-2026-00001")
	o.PaymentID = "pay-abc"
	require.NoError(t, repo.Save(ctx, o))

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.OrderNumber, found.OrderNumber)
		assert.Equal(t, o.TelegramUserID, found.TelegramUserID)
		assert.True(t, o.TotalPrice.Equal(found.TotalPrice))
		assert.Equal(t, order.StatusPending, found.Status)
		require.NotNil(t, found.ProductID)
		assert.Equal(t, *o.ProductID, *found.ProductID)
	})

	t.Run("by order number", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, "KV-2026-00001")
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("by payment id", func(t *testing.T) {
		found, err := repo.FindByPaymentID(ctx, "pay-abc")
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("missing order maps to ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := newTestOrder(t, "KV-2026-00002")
	require.NoError(t, repo.Save(ctx, o))

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, order.StatusPaid))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPaid, found.Status)

	t.Run("unknown order", func(t *testing.T) {
		err := repo.UpdateStatus(ctx, uuid.New(), order.StatusPaid)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormOrderRepository_FindByTelegramUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		o := newTestOrder(t, fmt.Sprintf("KV-2026-1000%d", i))
		require.NoError(t, repo.Save(ctx, o))
	}
	other, err := order.NewOrder("KV-2026-19999", 777, "Boris", decimal.NewFromInt(900))
	require.NoError(t, err)
	boxID := uuid.New()
	other.BoxID = &boxID
	require.NoError(t, repo.Save(ctx, other))

	orders, total, err := repo.FindByTelegramUser(ctx, 100500, shared.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, int64(100500), o.TelegramUserID)
	}
}

func TestGormOrderRepository_FindStalePending(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	now := time.Now()

	stale1 := newTestOrder(t, "KV-2026-20001")
	stale1.CreatedAt = now.Add(-48 * time.Hour)
	require.NoError(t, repo.Save(ctx, stale1))

	stale2 := newTestOrder(t, "KV-2026-20002")
	stale2.CreatedAt = now.Add(-30 * time.Hour)
	require.NoError(t, repo.Save(ctx, stale2))

	fresh := newTestOrder(t, "KV-2026-20003")
	require.NoError(t, repo.Save(ctx, fresh))

	paidStale := newTestOrder(t, "KV-2026-20004")
	paidStale.CreatedAt = now.Add(-48 * time.Hour)
	require.NoError(t, repo.Save(ctx, paidStale))
	require.NoError(t, repo.UpdateStatus(ctx, paidStale.ID, order.StatusPaid))

	stale, err := repo.FindStalePending(ctx, now.Add(-24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stale, 2)
	assert.Equal(t, "KV-2026-20001", stale[0].OrderNumber)
	assert.Equal(t, "KV-2026-20002", stale[1].OrderNumber)

	t.Run("respects the batch limit", func(t *testing.T) {
		stale, err := repo.FindStalePending(ctx, now.Add(-24*time.Hour), 1)
		require.NoError(t, err)
		require.Len(t, stale, 1)
		assert.Equal(t, "KV-2026-20001", stale[0].OrderNumber)
	})
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	prefix := fmt.Sprintf("KV-%d-", time.Now().Year())

	first, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefix+"00001", first)

	o := newTestOrder(t, first)
	require.NoError(t, repo.Save(ctx, o))

	second, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefix+"00002", second)
}

func TestGormOrderRepository_FilterByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o1 := newTestOrder(t, "KV-2026-30001")
	require.NoError(t, repo.Save(ctx, o1))
	o2 := newTestOrder(t, "KV-2026-30002")
	require.NoError(t, repo.Save(ctx, o2))
	require.NoError(t, repo.UpdateStatus(ctx, o2.ID, order.StatusCancelled))

	orders, total, err := repo.FindAll(ctx, shared.Filter{
		Filters: map[string]interface{}{"status": string(order.StatusCancelled)},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, orders, 1)
	assert.Equal(t, o2.ID, orders[0].ID)
}

func TestOrderModelRoundTrip(t *testing.T) {
	o := newTestOrder(t, "KV-2026-40001")
	o.CartItems = `[{"type":"product","id":"abc","quantity":2}]`
	o.PaymentURL = "https://pay.example/cnf"

	var model models.OrderModel
	model.FromDomain(o)
	back := model.ToDomain()

	assert.Equal(t, o.CartItems, back.CartItems)
	assert.Equal(t, o.PaymentURL, back.PaymentURL)
	assert.Equal(t, o.Status, back.Status)
}
