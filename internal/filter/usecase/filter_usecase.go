package usecase

import (
	"strings"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/filter/domain"
	"github.com/fhlgrn/ReadyReply/internal/filter/repository"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/rs/zerolog"
)

// filterUsecase implements FilterUsecase interface
type filterUsecase struct {
	filterRepo repository.FilterRepository
	log        zerolog.Logger
}

// NewFilterUsecase creates a new instance of filterUsecase
func NewFilterUsecase(filterRepo repository.FilterRepository, log zerolog.Logger) FilterUsecase {
	return &filterUsecase{
		filterRepo: filterRepo,
		log:        logger.Component(log, "filter_usecase"),
	}
}

func (u *filterUsecase) ListFilters() ([]*domain.Filter, error) {
	filters, err := u.filterRepo.List()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch filters", err)
	}
	return filters, nil
}

func (u *filterUsecase) ListEnabledFilters() ([]*domain.Filter, error) {
	filters, err := u.filterRepo.ListEnabled()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch filters", err)
	}
	return filters, nil
}

func (u *filterUsecase) GetFilter(id uint) (*domain.Filter, error) {
	filter, err := u.filterRepo.FindByID(id)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch filter", err)
	}
	if filter == nil {
		return nil, apperr.NotFound("Filter not found")
	}
	return filter, nil
}

func (u *filterUsecase) CreateFilter(req FilterCreateRequest) (*domain.Filter, error) {
	name := strings.TrimSpace(req.Name)
	template := strings.TrimSpace(req.ResponseTemplate)
	if name == "" {
		return nil, apperr.Validation("Filter name is required")
	}
	if template == "" {
		return nil, apperr.Validation("Response template is required")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	filter := &domain.Filter{
		Name:             name,
		Enabled:          enabled,
		FromEmail:        normalize(req.FromEmail),
		SubjectContains:  normalize(req.SubjectContains),
		BodyContains:     normalize(req.BodyContains),
		HasNoLabel:       normalize(req.HasNoLabel),
		ResponseTemplate: template,
		CreatedAt:        time.Now(),
	}

	if err := u.filterRepo.Create(filter); err != nil {
		return nil, apperr.Internal("Failed to create filter", err)
	}

	u.log.Info().Uint("filter_id", filter.ID).Str("name", filter.Name).Msg("filter created")
	return filter, nil
}

func (u *filterUsecase) UpdateFilter(id uint, updates FilterUpdateRequest) (*domain.Filter, error) {
	filter, err := u.GetFilter(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		name := strings.TrimSpace(*updates.Name)
		if name == "" {
			return nil, apperr.Validation("Filter name cannot be empty")
		}
		filter.Name = name
	}
	if updates.ResponseTemplate != nil {
		template := strings.TrimSpace(*updates.ResponseTemplate)
		if template == "" {
			return nil, apperr.Validation("Response template cannot be empty")
		}
		filter.ResponseTemplate = template
	}
	if updates.Enabled != nil {
		filter.Enabled = *updates.Enabled
	}
	if updates.FromEmail != nil {
		filter.FromEmail = normalize(updates.FromEmail)
	}
	if updates.SubjectContains != nil {
		filter.SubjectContains = normalize(updates.SubjectContains)
	}
	if updates.BodyContains != nil {
		filter.BodyContains = normalize(updates.BodyContains)
	}
	if updates.HasNoLabel != nil {
		filter.HasNoLabel = normalize(updates.HasNoLabel)
	}

	if err := u.filterRepo.Update(filter); err != nil {
		return nil, apperr.Internal("Failed to update filter", err)
	}
	return filter, nil
}

func (u *filterUsecase) DeleteFilter(id uint) (bool, error) {
	deleted, err := u.filterRepo.Delete(id)
	if err != nil {
		return false, apperr.Internal("Failed to delete filter", err)
	}
	if deleted {
		u.log.Info().Uint("filter_id", id).Msg("filter deleted")
	}
	return deleted, nil
}

func (u *filterUsecase) ToggleFilter(id uint) (*domain.Filter, error) {
	filter, err := u.GetFilter(id)
	if err != nil {
		return nil, err
	}
	filter.Enabled = !filter.Enabled
	if err := u.filterRepo.Update(filter); err != nil {
		return nil, apperr.Internal("Failed to update filter", err)
	}
	return filter, nil
}

// normalize turns blank predicates into nil so they are stored as NULL
func normalize(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
