package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSettlementMarkerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormSettlementMarkerRepository(db)
	ctx := context.Background()

	orderID := uuid.New()

	t.Run("unsettled order has no marker", func(t *testing.T) {
		exists, err := repo.Exists(ctx, orderID, inventory.DirectionSale)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("create then exists", func(t *testing.T) {
		marker, err := inventory.NewSettlementMarker(orderID, inventory.DirectionSale)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, marker))

		exists, err := repo.Exists(ctx, orderID, inventory.DirectionSale)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("directions are independent", func(t *testing.T) {
		exists, err := repo.Exists(ctx, orderID, inventory.DirectionRefund)
		require.NoError(t, err)
		assert.False(t, exists)

		marker, err := inventory.NewSettlementMarker(orderID, inventory.DirectionRefund)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, marker))

		exists, err = repo.Exists(ctx, orderID, inventory.DirectionRefund)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate marker violates the unique index", func(t *testing.T) {
		marker, err := inventory.NewSettlementMarker(orderID, inventory.DirectionSale)
		require.NoError(t, err)
		assert.Error(t, repo.Create(ctx, marker))
	})
}
