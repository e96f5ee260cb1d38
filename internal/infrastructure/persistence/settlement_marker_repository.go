package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettlementMarkerRepository implements SettlementMarkerRepository
// using GORM. The table carries a unique index on (order_id, direction)
// so a second insert for the same pair fails even if two transactions
// race past the Exists check.
type GormSettlementMarkerRepository struct {
	db *gorm.DB
}

// NewGormSettlementMarkerRepository creates a new GormSettlementMarkerRepository
func NewGormSettlementMarkerRepository(db *gorm.DB) *GormSettlementMarkerRepository {
	return &GormSettlementMarkerRepository{db: db}
}

// Exists reports whether the (order, direction) pair has been settled
func (r *GormSettlementMarkerRepository) Exists(ctx context.Context, orderID uuid.UUID, direction inventory.Direction) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SettlementMarkerModel{}).
		Where("order_id = ? AND direction = ?", orderID, direction.String()).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a settlement marker
func (r *GormSettlementMarkerRepository) Create(ctx context.Context, marker *inventory.SettlementMarker) error {
	var model models.SettlementMarkerModel
	model.FromDomain(marker)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Ensure GormSettlementMarkerRepository implements SettlementMarkerRepository
var _ inventory.SettlementMarkerRepository = (*GormSettlementMarkerRepository)(nil)
