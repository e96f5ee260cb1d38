package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kavara/backend/internal/domain/catalog"
	"github.com/kavara/backend/internal/domain/shared"
	"github.com/kavara/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBoxRepository implements BoxRepository using GORM
type GormBoxRepository struct {
	db *gorm.DB
}

// NewGormBoxRepository creates a new GormBoxRepository
func NewGormBoxRepository(db *gorm.DB) *GormBoxRepository {
	return &GormBoxRepository{db: db}
}

// FindByID finds a box by its ID
func (r *GormBoxRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Box, error) {
	var model models.BoxModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds boxes matching the filter, with total count
func (r *GormBoxRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Box, int64, error) {
	base := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.BoxModel{}), filter)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.BoxModel
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.BoxModel{}), filter).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	boxes := make([]catalog.Box, len(rows))
	for i := range rows {
		boxes[i] = *rows[i].ToDomain()
	}
	return boxes, total, nil
}

// Save creates or updates a box
func (r *GormBoxRepository) Save(ctx context.Context, box *catalog.Box) error {
	var model models.BoxModel
	model.FromDomain(box)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Delete deletes a box
func (r *GormBoxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BoxModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormBoxRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormBoxRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormBoxRepository implements BoxRepository
var _ catalog.BoxRepository = (*GormBoxRepository)(nil)
