package repository

import "github.com/fhlgrn/ReadyReply/internal/filter/domain"

// FilterRepository defines the interface for filter data access
type FilterRepository interface {
	// List returns every filter ordered by id
	List() ([]*domain.Filter, error)

	// ListEnabled returns enabled filters ordered by id
	ListEnabled() ([]*domain.Filter, error)

	// FindByID returns nil, nil when the filter does not exist
	FindByID(id uint) (*domain.Filter, error)

	Create(filter *domain.Filter) error

	// Update saves every column of filter
	Update(filter *domain.Filter) error

	// Delete reports false when nothing was removed
	Delete(id uint) (bool, error)
}
