package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgreSQL error codes that mean the row lock was not acquired in
// time: lock_not_available from lock_timeout, query_canceled from
// statement_timeout.
const (
	pgLockNotAvailable = "55P03"
	pgQueryCanceled    = "57014"
)

// GormSellableRepository implements SellableRepository using GORM.
// It dispatches on the entity kind to the products or boxes table and
// takes SELECT ... FOR UPDATE row locks, so it is only meaningful when
// constructed with a transaction handle.
type GormSellableRepository struct {
	db *gorm.DB
}

// NewGormSellableRepository creates a new GormSellableRepository
func NewGormSellableRepository(db *gorm.DB) *GormSellableRepository {
	return &GormSellableRepository{db: db}
}

// FindForUpdate loads the entity under an exclusive row lock. The lock
// is released when the enclosing transaction commits or rolls back.
func (r *GormSellableRepository) FindForUpdate(ctx context.Context, kind catalog.EntityKind, id uuid.UUID) (*catalog.Sellable, error) {
	locked := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})

	switch kind {
	case catalog.KindProduct:
		var model models.ProductModel
		if err := locked.First(&model, "id = ?", id).Error; err != nil {
			return nil, mapLockError(err, kind, id)
		}
		return &catalog.Sellable{
			Kind:      kind,
			ID:        model.ID,
			Name:      model.Name,
			Inventory: model.Inventory,
		}, nil
	case catalog.KindBox:
		var model models.BoxModel
		if err := locked.First(&model, "id = ?", id).Error; err != nil {
			return nil, mapLockError(err, kind, id)
		}
		return &catalog.Sellable{
			Kind:      kind,
			ID:        model.ID,
			Name:      model.Name,
			Inventory: model.Inventory,
		}, nil
	default:
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}
}

// UpdateInventory writes only the inventory column of the locked row.
func (r *GormSellableRepository) UpdateInventory(ctx context.Context, kind catalog.EntityKind, id uuid.UUID, inv catalog.SizeInventory) error {
	var result *gorm.DB
	switch kind {
	case catalog.KindProduct:
		result = r.db.WithContext(ctx).Model(&models.ProductModel{}).
			Where("id = ?", id).
			Update("inventory", inv)
	case catalog.KindBox:
		result = r.db.WithContext(ctx).Model(&models.BoxModel{}).
			Where("id = ?", id).
			Update("inventory", inv)
	default:
		return fmt.Errorf("unknown entity kind %q", kind)
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// mapLockError translates driver errors into domain errors: a missing
// row becomes ErrNotFound, an expired lock_timeout becomes a
// LockTimeoutError the caller can retry.
func mapLockError(err error, kind catalog.EntityKind, id uuid.UUID) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == pgLockNotAvailable || pgErr.Code == pgQueryCanceled) {
		return &inventory.LockTimeoutError{Kind: kind, EntityID: id}
	}
	return err
}

// Ensure GormSellableRepository implements SellableRepository
var _ catalog.SellableRepository = (*GormSellableRepository)(nil)
