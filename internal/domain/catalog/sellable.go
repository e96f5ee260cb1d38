package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EntityKind identifies which catalog type a sellable entity belongs to.
// The kind is an explicit tag carried on every line item; it is never
// inferred by probing repositories.
type EntityKind string

const (
	// KindProduct is a standalone catalog product
	KindProduct EntityKind = "product"
	// KindBox is a curated bundle sold as a single unit
	KindBox EntityKind = "box"
)

// String returns the string representation of EntityKind
func (k EntityKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known catalog type
func (k EntityKind) IsValid() bool {
	return k == KindProduct || k == KindBox
}

// DefaultSizeKey is the inventory key used for sizeless items.
const DefaultSizeKey = "default"

// SizeInventory maps a size label to quantity on hand.
// A nil map means stock is not tracked for the entity, which is a
// distinct state from an empty (tracked, all-zero) map.
type SizeInventory map[string]int

// Value implements driver.Valuer so the map is stored as a JSON column.
// A nil map is stored as SQL NULL to preserve the "not tracked" state.
func (s SizeInventory) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner for JSON / JSONB columns.
func (s *SizeInventory) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported inventory column type %T", value)
	}
	return json.Unmarshal(raw, s)
}

// Quantity returns the quantity on hand for the given size key.
// An absent key reads as zero.
func (s SizeInventory) Quantity(size string) int {
	if s == nil {
		return 0
	}
	return s[size]
}

// Tracked reports whether stock tracking is configured at all.
func (s SizeInventory) Tracked() bool {
	return s != nil
}

// Clone returns a deep copy of the inventory map.
func (s SizeInventory) Clone() SizeInventory {
	if s == nil {
		return nil
	}
	out := make(SizeInventory, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Sellable is the kind-generic view of a catalog entity the settlement
// engine operates on: identity, display name and the per-size ledger.
type Sellable struct {
	Kind      EntityKind
	ID        uuid.UUID
	Name      string
	Inventory SizeInventory
}
