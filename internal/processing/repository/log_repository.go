package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/processing/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type processingLogRepository struct {
	db *gorm.DB
}

func NewProcessingLogRepository(db *gorm.DB) ProcessingLogRepository {
	return &processingLogRepository{db: db}
}

func (r *processingLogRepository) CreateIfAbsent(log *domain.ProcessingLog) (bool, error) {
	if log.ProcessedAt.IsZero() {
		log.ProcessedAt = time.Now()
	}
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email_id"}},
		DoNothing: true,
	}).Create(log)
	if result.Error != nil {
		return false, fmt.Errorf("create processing log for %s: %w", log.EmailID, result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *processingLogRepository) IsProcessed(emailID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.ProcessingLog{}).Where("email_id = ?", emailID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check processing log for %s: %w", emailID, err)
	}
	return count > 0, nil
}

func (r *processingLogRepository) FindByID(id uint) (*domain.ProcessingLog, error) {
	var log domain.ProcessingLog
	err := r.db.First(&log, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find processing log %d: %w", id, err)
	}
	return &log, nil
}

func (r *processingLogRepository) List(page, limit int) ([]*domain.ProcessingLog, int64, error) {
	var logs []*domain.ProcessingLog
	var total int64

	if err := r.db.Model(&domain.ProcessingLog{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count processing logs: %w", err)
	}

	offset := (page - 1) * limit
	err := r.db.Order("processed_at DESC, id DESC").Limit(limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list processing logs: %w", err)
	}
	return logs, total, nil
}
