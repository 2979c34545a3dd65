package usecase

import "github.com/fhlgrn/ReadyReply/internal/filter/domain"

// FilterUsecase defines the interface for filter business logic
type FilterUsecase interface {
	ListFilters() ([]*domain.Filter, error)

	// ListEnabledFilters returns the filters the pipeline should run, in registry order
	ListEnabledFilters() ([]*domain.Filter, error)

	GetFilter(id uint) (*domain.Filter, error)

	CreateFilter(req FilterCreateRequest) (*domain.Filter, error)

	// UpdateFilter merges the provided fields into an existing filter
	UpdateFilter(id uint, updates FilterUpdateRequest) (*domain.Filter, error)

	// DeleteFilter reports false when the filter was already gone
	DeleteFilter(id uint) (bool, error)

	// ToggleFilter flips the enabled flag
	ToggleFilter(id uint) (*domain.Filter, error)
}

// FilterCreateRequest represents the body of a create call
type FilterCreateRequest struct {
	Name             string  `json:"name"`
	Enabled          *bool   `json:"enabled,omitempty"`
	FromEmail        *string `json:"fromEmail,omitempty"`
	SubjectContains  *string `json:"subjectContains,omitempty"`
	BodyContains     *string `json:"bodyContains,omitempty"`
	HasNoLabel       *string `json:"hasNoLabel,omitempty"`
	ResponseTemplate string  `json:"responseTemplate"`
}

// FilterUpdateRequest represents the fields that can be updated.
// An empty predicate string clears that predicate.
type FilterUpdateRequest struct {
	Name             *string `json:"name,omitempty"`
	Enabled          *bool   `json:"enabled,omitempty"`
	FromEmail        *string `json:"fromEmail,omitempty"`
	SubjectContains  *string `json:"subjectContains,omitempty"`
	BodyContains     *string `json:"bodyContains,omitempty"`
	HasNoLabel       *string `json:"hasNoLabel,omitempty"`
	ResponseTemplate *string `json:"responseTemplate,omitempty"`
}
