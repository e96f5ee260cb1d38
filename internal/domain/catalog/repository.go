package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BoxRepository defines persistence operations for boxes
type BoxRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Box, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Box, int64, error)
	Save(ctx context.Context, box *Box) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SellableRepository is the kind-generic catalog boundary used only by
// the settlement engine. Implementations must run inside the caller's
// transaction for the lock to mean anything.
type SellableRepository interface {
	// FindForUpdate loads the entity and takes an exclusive row lock
	// held until the enclosing transaction commits or rolls back.
	FindForUpdate(ctx context.Context, kind EntityKind, id uuid.UUID) (*Sellable, error)

	// UpdateInventory writes the inventory column of the locked entity.
	// Callers must hold the row lock from FindForUpdate; only the
	// inventory column is written, never the whole record.
	UpdateInventory(ctx context.Context, kind EntityKind, id uuid.UUID, inv SizeInventory) error
}
