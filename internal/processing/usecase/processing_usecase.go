package usecase

import (
	"github.com/fhlgrn/ReadyReply/internal/processing/domain"
	"github.com/fhlgrn/ReadyReply/internal/processing/repository"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type processingUsecase struct {
	logs  repository.ProcessingLogRepository
	stats repository.StatsRepository
}

func NewProcessingUsecase(logs repository.ProcessingLogRepository, stats repository.StatsRepository) ProcessingUsecase {
	return &processingUsecase{logs: logs, stats: stats}
}

func (u *processingUsecase) ListLogs(page, limit int) ([]*domain.ProcessingLog, *domain.Pagination, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	logs, total, err := u.logs.List(page, limit)
	if err != nil {
		return nil, nil, apperr.Internal("Failed to fetch logs", err)
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return logs, &domain.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}, nil
}

func (u *processingUsecase) GetLog(id uint) (*domain.ProcessingLog, error) {
	entry, err := u.logs.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch log", err)
	}
	if entry == nil {
		return nil, apperr.NotFound("Log not found")
	}
	return entry, nil
}

func (u *processingUsecase) GetStats() (*domain.AppStats, error) {
	stats, err := u.stats.Get()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch stats", err)
	}
	return stats, nil
}
