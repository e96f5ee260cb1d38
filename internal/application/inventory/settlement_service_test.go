package inventory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSellableRepo struct {
	byKey map[string]*catalog.Sellable
}

func newFakeSellableRepo() *fakeSellableRepo {
	return &fakeSellableRepo{byKey: make(map[string]*catalog.Sellable)}
}

func sellableKey(kind catalog.EntityKind, id uuid.UUID) string {
	return kind.String() + "|" + id.String()
}

func (r *fakeSellableRepo) add(s catalog.Sellable) {
	r.byKey[sellableKey(s.Kind, s.ID)] = &s
}

func (r *fakeSellableRepo) FindForUpdate(_ context.Context, kind catalog.EntityKind, id uuid.UUID) (*catalog.Sellable, error) {
	s, ok := r.byKey[sellableKey(kind, id)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *s
	clone.Inventory = s.Inventory.Clone()
	return &clone, nil
}

func (r *fakeSellableRepo) UpdateInventory(_ context.Context, kind catalog.EntityKind, id uuid.UUID, inv catalog.SizeInventory) error {
	s, ok := r.byKey[sellableKey(kind, id)]
	if !ok {
		return shared.ErrNotFound
	}
	s.Inventory = inv
	return nil
}

func (r *fakeSellableRepo) quantity(kind catalog.EntityKind, id uuid.UUID, size string) int {
	return r.byKey[sellableKey(kind, id)].Inventory.Quantity(size)
}

type fakeHistoryRepo struct {
	entries []inventory.HistoryEntry
}

func (r *fakeHistoryRepo) Append(_ context.Context, e *inventory.HistoryEntry) error {
	r.entries = append(r.entries, *e)
	return nil
}

func (r *fakeHistoryRepo) FindByEntity(_ context.Context, kind catalog.EntityKind, entityID uuid.UUID, _ shared.Filter) ([]inventory.HistoryEntry, int64, error) {
	var out []inventory.HistoryEntry
	for _, e := range r.entries {
		if e.EntityKind == kind && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeHistoryRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]inventory.HistoryEntry, error) {
	var out []inventory.HistoryEntry
	for _, e := range r.entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeHistoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.HistoryEntry, int64, error) {
	return r.entries, int64(len(r.entries)), nil
}

type fakeMarkerRepo struct {
	markers map[string]bool
}

func newFakeMarkerRepo() *fakeMarkerRepo {
	return &fakeMarkerRepo{markers: make(map[string]bool)}
}

func (r *fakeMarkerRepo) Exists(_ context.Context, orderID uuid.UUID, direction inventory.Direction) (bool, error) {
	return r.markers[orderID.String()+"|"+direction.String()], nil
}

func (r *fakeMarkerRepo) Create(_ context.Context, m *inventory.SettlementMarker) error {
	r.markers[m.OrderID.String()+"|"+m.Direction.String()] = true
	return nil
}

type settlementFixture struct {
	sellables *fakeSellableRepo
	history   *fakeHistoryRepo
	markers   *fakeMarkerRepo
	service   *SettlementService
}

func newSettlementFixture() *settlementFixture {
	f := &settlementFixture{
		sellables: newFakeSellableRepo(),
		history:   &fakeHistoryRepo{},
		markers:   newFakeMarkerRepo(),
	}
	scope := NewNoOpTransactionScope(f.sellables, f.history, f.markers, nil)
	f.service = NewSettlementService(scope, zap.NewNop())
	return f
}

func newSettlementOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder("KV-2024-1000", 42, "Customer", decimal.NewFromInt(1000))
	require.NoError(t, err)
	return o
}

func TestSettlementService_Sale(t *testing.T) {
	ctx := context.Background()

	t.Run("decrements stock and appends one history row per line", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 5},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))

		assert.Equal(t, 4, f.sellables.quantity(catalog.KindProduct, productID, "M"))
		require.Len(t, f.history.entries, 1)
		entry := f.history.entries[0]
		assert.Equal(t, inventory.OperationSale, entry.OperationType)
		assert.Equal(t, -1, entry.QuantityDelta)
		assert.Equal(t, 4, entry.BalanceAfter)
		require.NotNil(t, entry.OrderID)
		assert.Equal(t, o.GetID(), *entry.OrderID)
	})

	t.Run("duplicate cart lines settle as one aggregated decrement", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 10},
		})

		o := newSettlementOrder(t)
		o.CartItems = fmt.Sprintf(
			`[{"type":"product","id":"%s","size":"M","quantity":2},{"type":"product","id":"%s","size":"M","quantity":3}]`,
			productID, productID)

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))

		assert.Equal(t, 5, f.sellables.quantity(catalog.KindProduct, productID, "M"))
		require.Len(t, f.history.entries, 1)
		assert.Equal(t, -5, f.history.entries[0].QuantityDelta)
	})

	t.Run("box and cart product settle independently", func(t *testing.T) {
		f := newSettlementFixture()
		boxID := uuid.New()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindBox, ID: boxID, Name: "Spring Box",
			Inventory: catalog.SizeInventory{"default": 2},
		})
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"default": 3},
		})

		o := newSettlementOrder(t)
		o.BoxID = &boxID
		o.CartItems = fmt.Sprintf(`[{"type":"product","id":"%s","quantity":1}]`, productID)

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))

		assert.Equal(t, 1, f.sellables.quantity(catalog.KindBox, boxID, catalog.DefaultSizeKey))
		assert.Equal(t, 2, f.sellables.quantity(catalog.KindProduct, productID, catalog.DefaultSizeKey))
		assert.Len(t, f.history.entries, 2)
	})

	t.Run("insufficient stock fails with a typed error", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 1},
		})

		o := newSettlementOrder(t)
		o.CartItems = fmt.Sprintf(`[{"type":"product","id":"%s","size":"M","quantity":3}]`, productID)

		err := f.service.Settle(ctx, o, inventory.DirectionSale)

		var insufficient *inventory.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, "Scarf", insufficient.EntityName)
		assert.Equal(t, "M", insufficient.Size)
		assert.Equal(t, 1, insufficient.Available)
		assert.Equal(t, 3, insufficient.Requested)
		// No marker on failure, the order stays unsettled.
		settled, _ := f.markers.Exists(ctx, o.GetID(), inventory.DirectionSale)
		assert.False(t, settled)
	})

	t.Run("untracked entity cannot be sold", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: nil,
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID

		err := f.service.Settle(ctx, o, inventory.DirectionSale)

		var notTracked *inventory.NotTrackedError
		require.ErrorAs(t, err, &notTracked)
		assert.Equal(t, "Scarf", notTracked.EntityName)
	})

	t.Run("tracked entity with empty map is sold out, not untracked", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		err := f.service.Settle(ctx, o, inventory.DirectionSale)

		var insufficient *inventory.InsufficientStockError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 0, insufficient.Available)
	})

	t.Run("unknown entity fails with not found", func(t *testing.T) {
		f := newSettlementFixture()
		o := newSettlementOrder(t)
		missing := uuid.New()
		o.ProductID = &missing

		err := f.service.Settle(ctx, o, inventory.DirectionSale)

		var notFound *inventory.EntityNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, missing, notFound.EntityID)
	})

	t.Run("order with no line items settles trivially", func(t *testing.T) {
		f := newSettlementFixture()
		o := newSettlementOrder(t)

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))
		assert.Empty(t, f.history.entries)
		settled, _ := f.markers.Exists(ctx, o.GetID(), inventory.DirectionSale)
		assert.True(t, settled)
	})
}

func TestSettlementService_Refund(t *testing.T) {
	ctx := context.Background()

	t.Run("credits stock back as a correction", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 4},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))

		assert.Equal(t, 5, f.sellables.quantity(catalog.KindProduct, productID, "M"))
		require.Len(t, f.history.entries, 1)
		assert.Equal(t, inventory.OperationCorrection, f.history.entries[0].OperationType)
		assert.Equal(t, 1, f.history.entries[0].QuantityDelta)
	})

	t.Run("refund of an untracked entity initializes its inventory", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: nil,
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))

		inv := f.sellables.byKey[sellableKey(catalog.KindProduct, productID)].Inventory
		assert.True(t, inv.Tracked())
		assert.Equal(t, 1, inv.Quantity("M"))
	})

	t.Run("sale then refund restores the initial quantities", func(t *testing.T) {
		f := newSettlementFixture()
		boxID := uuid.New()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindBox, ID: boxID, Name: "Spring Box",
			Inventory: catalog.SizeInventory{"M": 2},
		})
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 7},
		})

		o := newSettlementOrder(t)
		o.BoxID = &boxID
		o.SelectedSize = "M"
		o.CartItems = fmt.Sprintf(`[{"type":"product","id":"%s","size":"M","quantity":3}]`, productID)

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))
		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))

		assert.Equal(t, 2, f.sellables.quantity(catalog.KindBox, boxID, "M"))
		assert.Equal(t, 7, f.sellables.quantity(catalog.KindProduct, productID, "M"))

		// Every audited delta cancels out.
		sum := 0
		for _, e := range f.history.entries {
			sum += e.QuantityDelta
		}
		assert.Equal(t, 0, sum)
	})
}

func TestSettlementService_Idempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("second settlement in the same direction is a no-op", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 5},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))
		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))

		assert.Equal(t, 4, f.sellables.quantity(catalog.KindProduct, productID, "M"))
		assert.Len(t, f.history.entries, 1)
	})

	t.Run("double refund credits stock only once", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 4},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))
		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))

		assert.Equal(t, 5, f.sellables.quantity(catalog.KindProduct, productID, "M"))
		assert.Len(t, f.history.entries, 1)
	})

	t.Run("sale marker does not block the refund", func(t *testing.T) {
		f := newSettlementFixture()
		productID := uuid.New()
		f.sellables.add(catalog.Sellable{
			Kind: catalog.KindProduct, ID: productID, Name: "Scarf",
			Inventory: catalog.SizeInventory{"M": 5},
		})

		o := newSettlementOrder(t)
		o.ProductID = &productID
		o.SelectedSize = "M"

		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionSale))
		require.NoError(t, f.service.Settle(ctx, o, inventory.DirectionRefund))

		assert.Equal(t, 5, f.sellables.quantity(catalog.KindProduct, productID, "M"))
	})
}

func TestSettlementService_InvalidDirection(t *testing.T) {
	f := newSettlementFixture()
	o := newSettlementOrder(t)

	err := f.service.Settle(context.Background(), o, inventory.Direction("sideways"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	assert.True(t, errors.As(err, &domainErr))
}
