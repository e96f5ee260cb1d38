package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/shared"
)

// HistoryRepository is the append-only store for audit entries.
// There is intentionally no update or delete.
type HistoryRepository interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	FindByEntity(ctx context.Context, kind catalog.EntityKind, entityID uuid.UUID, filter shared.Filter) ([]HistoryEntry, int64, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]HistoryEntry, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]HistoryEntry, int64, error)
}

// SettlementMarkerRepository stores per-order settlement markers.
type SettlementMarkerRepository interface {
	// Exists reports whether the (order, direction) pair has already
	// been settled.
	Exists(ctx context.Context, orderID uuid.UUID, direction Direction) (bool, error)
	Create(ctx context.Context, marker *SettlementMarker) error
}
