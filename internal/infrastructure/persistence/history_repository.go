package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/inventory"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormHistoryRepository implements HistoryRepository using GORM.
// The store is append-only: rows are inserted with Create, never saved
// over, and no delete is exposed.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts a new audit entry
func (r *GormHistoryRepository) Append(ctx context.Context, entry *inventory.HistoryEntry) error {
	var model models.StockHistoryModel
	model.FromDomain(entry)
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByEntity finds audit entries for one catalog entity, newest first
func (r *GormHistoryRepository) FindByEntity(ctx context.Context, kind catalog.EntityKind, entityID uuid.UUID, filter shared.Filter) ([]inventory.HistoryEntry, int64, error) {
	scope := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.StockHistoryModel{}).
			Where("entity_kind = ? AND entity_id = ?", kind.String(), entityID)
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StockHistoryModel
	if err := r.applyFilter(scope(), filter).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainHistory(rows), total, nil
}

// FindByOrder finds all audit entries written for an order
func (r *GormHistoryRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.HistoryEntry, error) {
	var rows []models.StockHistoryModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainHistory(rows), nil
}

// FindAll finds audit entries matching the filter, with total count
func (r *GormHistoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.HistoryEntry, int64, error) {
	var total int64
	if err := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.StockHistoryModel{}), filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.StockHistoryModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.StockHistoryModel{}), filter).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toDomainHistory(rows), total, nil
}

// applyFilter applies filter options to the query
func (r *GormHistoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormHistoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "operation_type":
			query = query.Where("operation_type = ?", value)
		case "entity_kind":
			query = query.Where("entity_kind = ?", value)
		}
	}
	return query
}

func toDomainHistory(rows []models.StockHistoryModel) []inventory.HistoryEntry {
	entries := make([]inventory.HistoryEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

// Ensure GormHistoryRepository implements HistoryRepository
var _ inventory.HistoryRepository = (*GormHistoryRepository)(nil)
