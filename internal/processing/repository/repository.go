package repository

import "github.com/fhlgrn/ReadyReply/internal/processing/domain"

// ProcessingLogRepository stores the per-email outcome history
type ProcessingLogRepository interface {
	// CreateIfAbsent inserts log unless a row with the same email id exists.
	// It reports whether the row was written.
	CreateIfAbsent(log *domain.ProcessingLog) (bool, error)

	// IsProcessed reports whether any log exists for the provider email id
	IsProcessed(emailID string) (bool, error)

	// FindByID returns nil, nil when the log does not exist
	FindByID(id uint) (*domain.ProcessingLog, error)

	// List returns one page of logs, newest first, with the total count
	List(page, limit int) ([]*domain.ProcessingLog, int64, error)
}

// StatsRepository stores the singleton counters
type StatsRepository interface {
	Get() (*domain.AppStats, error)

	// Increment adds n to field and bumps lastUpdated
	Increment(field domain.StatField, n int64) error
}
