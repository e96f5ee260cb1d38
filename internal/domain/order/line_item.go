package order

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
)

// LineItem is a normalized unit of settlement: one sellable entity, one
// size, an aggregate quantity. Derived from an order, never persisted.
type LineItem struct {
	Kind     catalog.EntityKind
	EntityID uuid.UUID
	Size     string // empty for sizeless items
	Quantity int
}

// InventoryKey returns the size key used in the entity's inventory map.
// Sizeless items settle against the "default" key.
func (li LineItem) InventoryKey() string {
	if li.Size == "" {
		return catalog.DefaultSizeKey
	}
	return li.Size
}

// aggregationKey identifies duplicate raw entries that must be summed.
func (li LineItem) aggregationKey() string {
	size := li.Size
	if size == "" {
		size = "nosize"
	}
	return li.Kind.String() + "|" + li.EntityID.String() + "|" + size
}

// cartEntry is the wire shape of one serialized cart line.
type cartEntry struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Extract normalizes the order into a flat, deduplicated list of line
// items. It never fails: a malformed embedded cart JSON contributes no
// items and is reported through the second return value so callers can
// log it instead of silently losing lines. Entries referring to the
// same (kind, entity, size) are summed into a single item, and the
// result is sorted by (kind, entity id, size) so that every settlement
// acquires row locks in the same global order.
func (o *Order) Extract() (items []LineItem, malformed bool) {
	var raw []LineItem

	if o.BoxID != nil {
		raw = append(raw, LineItem{
			Kind:     catalog.KindBox,
			EntityID: *o.BoxID,
			Size:     o.SelectedSize,
			Quantity: 1,
		})
	}
	if o.ProductID != nil {
		raw = append(raw, LineItem{
			Kind:     catalog.KindProduct,
			EntityID: *o.ProductID,
			Size:     o.SelectedSize,
			Quantity: 1,
		})
	}

	if cart := strings.TrimSpace(o.CartItems); cart != "" {
		var entries []cartEntry
		if err := json.Unmarshal([]byte(cart), &entries); err != nil {
			malformed = true
		} else {
			for _, e := range entries {
				kind := catalog.EntityKind(e.Type)
				if !kind.IsValid() {
					malformed = true
					continue
				}
				id, err := uuid.Parse(e.ID)
				if err != nil {
					malformed = true
					continue
				}
				qty := e.Quantity
				if qty <= 0 {
					qty = 1
				}
				raw = append(raw, LineItem{
					Kind:     kind,
					EntityID: id,
					Size:     e.Size,
					Quantity: qty,
				})
			}
		}
	}

	return aggregate(raw), malformed
}

// aggregate sums duplicate (kind, entity, size) entries and returns the
// items in deterministic order.
func aggregate(raw []LineItem) []LineItem {
	if len(raw) == 0 {
		return nil
	}

	merged := make(map[string]LineItem, len(raw))
	for _, li := range raw {
		key := li.aggregationKey()
		if existing, ok := merged[key]; ok {
			existing.Quantity += li.Quantity
			merged[key] = existing
		} else {
			merged[key] = li
		}
	}

	items := make([]LineItem, 0, len(merged))
	for _, li := range merged {
		items = append(items, li)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Kind != items[j].Kind {
			return items[i].Kind < items[j].Kind
		}
		if items[i].EntityID != items[j].EntityID {
			return items[i].EntityID.String() < items[j].EntityID.String()
		}
		return items[i].Size < items[j].Size
	})
	return items
}
