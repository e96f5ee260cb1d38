package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/shared"
)

// HistoryService exposes read access to the stock audit trail.
type HistoryService struct {
	historyRepo inventory.HistoryRepository
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(historyRepo inventory.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// ListByEntity returns the audit rows for one sellable entity, newest first
func (s *HistoryService) ListByEntity(ctx context.Context, kind catalog.EntityKind, entityID uuid.UUID, filter shared.Filter) (*HistoryListResponse, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown entity kind: "+kind.String())
	}
	entries, total, err := s.historyRepo.FindByEntity(ctx, kind, entityID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing stock history: %w", err)
	}
	resp := ToHistoryListResponse(entries, total, filter.Page, filter.PageSize)
	return &resp, nil
}

// ListByOrder returns every audit row an order produced
func (s *HistoryService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]HistoryEntryResponse, error) {
	entries, err := s.historyRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing order stock history: %w", err)
	}
	out := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToHistoryEntryResponse(&entries[i]))
	}
	return out, nil
}

// List returns the full audit trail, paginated
func (s *HistoryService) List(ctx context.Context, filter shared.Filter) (*HistoryListResponse, error) {
	entries, total, err := s.historyRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing stock history: %w", err)
	}
	resp := ToHistoryListResponse(entries, total, filter.Page, filter.PageSize)
	return &resp, nil
}
