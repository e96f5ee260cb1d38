package models

import (
	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
)

// StockHistoryModel is the append-only persistence model for inventory
// audit entries. Rows are only ever inserted.
type StockHistoryModel struct {
	BaseModel
	EntityKind    string     `gorm:"index:idx_stock_history_entity;not null"`
	EntityID      uuid.UUID  `gorm:"type:uuid;index:idx_stock_history_entity;not null"`
	Size          string     `gorm:"not null"`
	OperationType string     `gorm:"not null"`
	QuantityDelta int        `gorm:"not null"`
	BalanceAfter  int        `gorm:"not null"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	Note          string     `gorm:"type:text"`
}

// TableName returns the table name for StockHistoryModel
func (StockHistoryModel) TableName() string {
	return "stock_history"
}

// ToDomain converts the persistence model to a domain history entry
func (m *StockHistoryModel) ToDomain() *inventory.HistoryEntry {
	return &inventory.HistoryEntry{
		BaseEntity:    m.BaseModel.ToDomain(),
		EntityKind:    catalog.EntityKind(m.EntityKind),
		EntityID:      m.EntityID,
		Size:          m.Size,
		OperationType: inventory.OperationType(m.OperationType),
		QuantityDelta: m.QuantityDelta,
		BalanceAfter:  m.BalanceAfter,
		OrderID:       m.OrderID,
		Note:          m.Note,
	}
}

// FromDomain populates the persistence model from a domain history entry
func (m *StockHistoryModel) FromDomain(e *inventory.HistoryEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.EntityKind = e.EntityKind.String()
	m.EntityID = e.EntityID
	m.Size = e.Size
	m.OperationType = e.OperationType.String()
	m.QuantityDelta = e.QuantityDelta
	m.BalanceAfter = e.BalanceAfter
	m.OrderID = e.OrderID
	m.Note = e.Note
}

// SettlementMarkerModel is the persistence model for settlement markers.
// The unique index makes repeat settlement of the same (order, direction)
// pair fail at the database even under concurrent writers.
type SettlementMarkerModel struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_settlement_order_direction;not null"`
	Direction string    `gorm:"uniqueIndex:idx_settlement_order_direction;not null"`
}

// TableName returns the table name for SettlementMarkerModel
func (SettlementMarkerModel) TableName() string {
	return "settlement_markers"
}

// ToDomain converts the persistence model to a domain settlement marker
func (m *SettlementMarkerModel) ToDomain() *inventory.SettlementMarker {
	return &inventory.SettlementMarker{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Direction:  inventory.Direction(m.Direction),
	}
}

// FromDomain populates the persistence model from a domain settlement marker
func (m *SettlementMarkerModel) FromDomain(marker *inventory.SettlementMarker) {
	m.FromDomainBaseEntity(marker.BaseEntity)
	m.OrderID = marker.OrderID
	m.Direction = marker.Direction.String()
}
