package repository

import (
	"fmt"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/processing/domain"

	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// Get returns the singleton row, creating it zeroed on first use
func (r *statsRepository) Get() (*domain.AppStats, error) {
	stats := domain.AppStats{ID: domain.StatsID}
	err := r.db.Where(domain.AppStats{ID: domain.StatsID}).
		Attrs(domain.AppStats{LastUpdated: time.Now()}).
		FirstOrCreate(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return &stats, nil
}

func (r *statsRepository) Increment(field domain.StatField, n int64) error {
	if !field.Valid() {
		return fmt.Errorf("unknown stats field %q", field)
	}
	if _, err := r.Get(); err != nil {
		return err
	}

	column := string(field)
	err := r.db.Model(&domain.AppStats{}).Where("id = ?", domain.StatsID).
		Updates(map[string]interface{}{
			column:         gorm.Expr(column+" + ?", n),
			"last_updated": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("increment %s: %w", column, err)
	}
	return nil
}
