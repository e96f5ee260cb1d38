package inventory

import (
	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/shared"
)

// Direction is the sign of a settlement: a sale reduces stock, a refund
// restores it.
type Direction string

const (
	DirectionSale   Direction = "sale"
	DirectionRefund Direction = "refund"
)

// String returns the string representation of Direction
func (d Direction) String() string {
	return string(d)
}

// IsValid returns true if the direction is known
func (d Direction) IsValid() bool {
	return d == DirectionSale || d == DirectionRefund
}

// SettlementMarker records that a settlement direction has been applied
// for an order. It is written inside the settlement transaction and
// checked before settling, turning repeat calls (double cancellation
// handlers, webhook retries) into no-ops. Unique per (order, direction).
type SettlementMarker struct {
	shared.BaseEntity
	OrderID   uuid.UUID
	Direction Direction
}

// NewSettlementMarker creates a marker for the given order and direction
func NewSettlementMarker(orderID uuid.UUID, direction Direction) (*SettlementMarker, error) {
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown settlement direction: "+direction.String())
	}
	return &SettlementMarker{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Direction:  direction,
	}, nil
}
