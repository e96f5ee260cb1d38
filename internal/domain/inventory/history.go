package inventory

import (
	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/shared"
)

// OperationType classifies an inventory adjustment in the audit trail
type OperationType string

const (
	// OperationSale is a stock decrement caused by order settlement
	OperationSale OperationType = "sale"
	// OperationCorrection is a stock credit (refund or manual fix)
	OperationCorrection OperationType = "correction"
)

// String returns the string representation of OperationType
func (t OperationType) String() string {
	return string(t)
}

// IsValid returns true if the operation type is known
func (t OperationType) IsValid() bool {
	return t == OperationSale || t == OperationCorrection
}

// HistoryEntry is one append-only audit row recording a single stock
// adjustment. Entries are never updated or deleted; they are the
// reconciliation trail for disputes and ERP export.
type HistoryEntry struct {
	shared.BaseEntity
	EntityKind    catalog.EntityKind
	EntityID      uuid.UUID
	Size          string
	OperationType OperationType
	QuantityDelta int // signed: negative for sales, positive for credits
	BalanceAfter  int
	OrderID       *uuid.UUID
	Note          string
}

// NewHistoryEntry creates an audit row for a settlement adjustment
func NewHistoryEntry(
	kind catalog.EntityKind,
	entityID uuid.UUID,
	size string,
	op OperationType,
	delta int,
	balanceAfter int,
	orderID *uuid.UUID,
	note string,
) (*HistoryEntry, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown entity kind: "+kind.String())
	}
	if !op.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown operation type: "+op.String())
	}
	if delta == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "History entry delta cannot be zero")
	}
	if balanceAfter < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "History entry balance cannot be negative")
	}
	return &HistoryEntry{
		BaseEntity:    shared.NewBaseEntity(),
		EntityKind:    kind,
		EntityID:      entityID,
		Size:          size,
		OperationType: op,
		QuantityDelta: delta,
		BalanceAfter:  balanceAfter,
		OrderID:       orderID,
		Note:          note,
	}, nil
}
