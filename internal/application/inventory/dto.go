package inventory

import (
	"time"

	"github.com/kavara/backend/internal/domain/inventory"
)

// HistoryEntryResponse is the read model for one audit row
type HistoryEntryResponse struct {
	ID            string    `json:"id"`
	EntityKind    string    `json:"entity_kind"`
	EntityID      string    `json:"entity_id"`
	Size          string    `json:"size"`
	OperationType string    `json:"operation_type"`
	QuantityDelta int       `json:"quantity_delta"`
	BalanceAfter  int       `json:"balance_after"`
	OrderID       *string   `json:"order_id,omitempty"`
	Note          string    `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryListResponse is a paginated list of audit rows
type HistoryListResponse struct {
	Entries  []HistoryEntryResponse `json:"entries"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
}

// ToHistoryEntryResponse converts a domain entry to its read model
func ToHistoryEntryResponse(e *inventory.HistoryEntry) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		ID:            e.GetID().String(),
		EntityKind:    e.EntityKind.String(),
		EntityID:      e.EntityID.String(),
		Size:          e.Size,
		OperationType: e.OperationType.String(),
		QuantityDelta: e.QuantityDelta,
		BalanceAfter:  e.BalanceAfter,
		Note:          e.Note,
		CreatedAt:     e.GetCreatedAt(),
	}
	if e.OrderID != nil {
		id := e.OrderID.String()
		resp.OrderID = &id
	}
	return resp
}

// ToHistoryListResponse converts a page of domain entries
func ToHistoryListResponse(entries []inventory.HistoryEntry, total int64, page, pageSize int) HistoryListResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToHistoryEntryResponse(&entries[i]))
	}
	return HistoryListResponse{Entries: out, Total: total, Page: page, PageSize: pageSize}
}
