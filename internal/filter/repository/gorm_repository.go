package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/filter/domain"

	"gorm.io/gorm"
)

// gormFilterRepository implements FilterRepository using GORM
type gormFilterRepository struct {
	db *gorm.DB
}

// NewGormFilterRepository creates a new GORM-based FilterRepository
func NewGormFilterRepository(db *gorm.DB) FilterRepository {
	return &gormFilterRepository{db: db}
}

func (r *gormFilterRepository) List() ([]*domain.Filter, error) {
	var filters []*domain.Filter
	if err := r.db.Order("id ASC").Find(&filters).Error; err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	return filters, nil
}

func (r *gormFilterRepository) ListEnabled() ([]*domain.Filter, error) {
	var filters []*domain.Filter
	if err := r.db.Where("enabled = ?", true).Order("id ASC").Find(&filters).Error; err != nil {
		return nil, fmt.Errorf("list enabled filters: %w", err)
	}
	return filters, nil
}

func (r *gormFilterRepository) FindByID(id uint) (*domain.Filter, error) {
	var filter domain.Filter
	err := r.db.First(&filter, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find filter %d: %w", id, err)
	}
	return &filter, nil
}

func (r *gormFilterRepository) Create(filter *domain.Filter) error {
	if filter.CreatedAt.IsZero() {
		filter.CreatedAt = time.Now()
	}
	if err := r.db.Create(filter).Error; err != nil {
		return fmt.Errorf("create filter: %w", err)
	}
	return nil
}

func (r *gormFilterRepository) Update(filter *domain.Filter) error {
	if err := r.db.Save(filter).Error; err != nil {
		return fmt.Errorf("update filter %d: %w", filter.ID, err)
	}
	return nil
}

func (r *gormFilterRepository) Delete(id uint) (bool, error) {
	result := r.db.Delete(&domain.Filter{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("delete filter %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
