package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/order"
	"github.com/kavara/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SettlementService applies an order's line items against the per-size
// stock ledgers. Every settlement runs inside a single database
// transaction: each touched entity row is locked exclusively, validated,
// adjusted and audited, and a settlement marker is written so the same
// order is never settled twice in the same direction.
type SettlementService struct {
	txScope TransactionScope
	logger  *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(txScope TransactionScope, logger *zap.Logger) *SettlementService {
	return &SettlementService{txScope: txScope, logger: logger}
}

// Settle applies the order in the given direction inside its own
// transaction. Sale decrements stock, refund credits it back.
func (s *SettlementService) Settle(ctx context.Context, o *order.Order, direction inventory.Direction) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return s.ApplyWithin(ctx, repos, o, direction)
	})
}

// ApplyWithin performs the settlement using the caller's transactional
// repositories so that order creation can bundle the order insert and
// the sale settlement into one atomic transaction. The caller owns
// commit and rollback.
func (s *SettlementService) ApplyWithin(ctx context.Context, repos TransactionalRepositories, o *order.Order, direction inventory.Direction) error {
	if !direction.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown settlement direction: "+direction.String())
	}

	settled, err := repos.MarkerRepo().Exists(ctx, o.GetID(), direction)
	if err != nil {
		return fmt.Errorf("checking settlement marker: %w", err)
	}
	if settled {
		s.logger.Info("order already settled, skipping",
			zap.String("order_id", o.GetID().String()),
			zap.String("order_number", o.OrderNumber),
			zap.String("direction", direction.String()))
		return nil
	}

	items, malformed := o.Extract()
	if malformed {
		s.logger.Warn("order carries a partially malformed cart payload",
			zap.String("order_id", o.GetID().String()),
			zap.String("order_number", o.OrderNumber))
	}

	for _, li := range items {
		if err := s.applyLineItem(ctx, repos, o, li, direction); err != nil {
			return err
		}
	}

	marker, err := inventory.NewSettlementMarker(o.GetID(), direction)
	if err != nil {
		return err
	}
	if err := repos.MarkerRepo().Create(ctx, marker); err != nil {
		return fmt.Errorf("recording settlement marker: %w", err)
	}

	s.logger.Info("order settled",
		zap.String("order_id", o.GetID().String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("direction", direction.String()),
		zap.Int("line_items", len(items)))
	return nil
}

// applyLineItem locks one entity row, validates the adjustment, writes
// the new balance and appends the audit entry. The extractor already
// sorted items by (kind, entity id, size), so concurrent settlements
// acquire locks in the same global order.
func (s *SettlementService) applyLineItem(ctx context.Context, repos TransactionalRepositories, o *order.Order, li order.LineItem, direction inventory.Direction) error {
	sellable, err := repos.SellableRepo().FindForUpdate(ctx, li.Kind, li.EntityID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &inventory.EntityNotFoundError{Kind: li.Kind, EntityID: li.EntityID}
		}
		return err
	}

	inv := sellable.Inventory
	key := li.InventoryKey()

	var op inventory.OperationType
	var delta int
	switch direction {
	case inventory.DirectionSale:
		// Untracked items cannot be sold. Operators have to configure
		// stock before the item becomes purchasable.
		if !inv.Tracked() {
			return &inventory.NotTrackedError{Kind: li.Kind, EntityID: li.EntityID, EntityName: sellable.Name}
		}
		available := inv.Quantity(key)
		if available < li.Quantity {
			return &inventory.InsufficientStockError{
				Kind:       li.Kind,
				EntityID:   li.EntityID,
				EntityName: sellable.Name,
				Size:       key,
				Available:  available,
				Requested:  li.Quantity,
			}
		}
		op = inventory.OperationSale
		delta = -li.Quantity
	case inventory.DirectionRefund:
		// A refund must never be blocked by missing stock configuration.
		if !inv.Tracked() {
			inv = catalog.SizeInventory{}
		}
		op = inventory.OperationCorrection
		delta = li.Quantity
	}

	newQty := inv.Quantity(key) + delta
	if newQty < 0 {
		newQty = 0
	}

	updated := inv.Clone()
	updated[key] = newQty
	if err := repos.SellableRepo().UpdateInventory(ctx, li.Kind, li.EntityID, updated); err != nil {
		return fmt.Errorf("updating %s %s inventory: %w", li.Kind, li.EntityID, err)
	}

	note := fmt.Sprintf("sale for order %s", o.OrderNumber)
	if direction == inventory.DirectionRefund {
		note = fmt.Sprintf("refund for order %s", o.OrderNumber)
	}
	orderID := o.GetID()
	entry, err := inventory.NewHistoryEntry(li.Kind, li.EntityID, key, op, delta, newQty, &orderID, note)
	if err != nil {
		return err
	}
	if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
		return fmt.Errorf("appending stock history: %w", err)
	}

	s.logger.Debug("line item settled",
		zap.String("kind", li.Kind.String()),
		zap.String("entity_id", li.EntityID.String()),
		zap.String("size", key),
		zap.Int("delta", delta),
		zap.Int("balance_after", newQty))
	return nil
}
