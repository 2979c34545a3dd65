package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	draftusecase "github.com/fhlgrn/ReadyReply/internal/draft/usecase"
	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
	filterusecase "github.com/fhlgrn/ReadyReply/internal/filter/usecase"
	"github.com/fhlgrn/ReadyReply/internal/processing/domain"
	"github.com/fhlgrn/ReadyReply/internal/processing/repository"
	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/ai"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"
	"github.com/fhlgrn/ReadyReply/pkg/metrics"

	"github.com/rs/zerolog"
)

const emptyDraftMessage = "empty draft generated"

type pipeline struct {
	settings settingsusecase.SettingsUsecase
	filters  filterusecase.FilterUsecase
	mail     emaildomain.MailGateway
	drafts   draftusecase.DraftGenerator
	logs     repository.ProcessingLogRepository
	stats    repository.StatsRepository
	log      zerolog.Logger
	now      func() time.Time

	running sync.Mutex
	stateMu sync.RWMutex
	state   State
}

// NewPipeline wires the collaborators of one processing run
func NewPipeline(
	settings settingsusecase.SettingsUsecase,
	filters filterusecase.FilterUsecase,
	mail emaildomain.MailGateway,
	drafts draftusecase.DraftGenerator,
	logs repository.ProcessingLogRepository,
	stats repository.StatsRepository,
	log zerolog.Logger,
) Pipeline {
	return &pipeline{
		settings: settings,
		filters:  filters,
		mail:     mail,
		drafts:   drafts,
		logs:     logs,
		stats:    stats,
		log:      logger.Component(log, "pipeline"),
		now:      time.Now,
		state:    StateIdle,
	}
}

func (p *pipeline) State() State {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.state
}

func (p *pipeline) setState(s State) {
	p.stateMu.Lock()
	p.state = s
	p.stateMu.Unlock()
}

// Run ignores cancellation of ctx: an abandoned request must not turn the
// remaining emails into error logs, since a log row marks an email as done.
func (p *pipeline) Run(ctx context.Context, trigger Trigger) (*Result, error) {
	ctx = context.WithoutCancel(ctx)
	if !p.running.TryLock() {
		return nil, apperr.Conflict("Processing is already running")
	}
	defer p.running.Unlock()

	settings, err := p.settings.GetSettings()
	if err != nil {
		return nil, err
	}
	if !settings.ServiceEnabled {
		return nil, apperr.ServiceDisabled()
	}

	start := p.now()
	p.setState(StateRunning)
	result, err := p.run(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		p.setState(StateFailed)
		p.log.Error().Err(err).Str("trigger", string(trigger)).Msg("processing run failed")
	} else {
		p.setState(StateIdle)
		p.log.Info().
			Str("trigger", string(trigger)).
			Int("processed", result.Processed).
			Int("errors", result.Errors).
			Dur("duration", p.now().Sub(start)).
			Msg("processing run finished")
	}
	metrics.RecordPipelineRun(string(trigger), outcome, p.now().Sub(start))
	return result, err
}

func (p *pipeline) run(ctx context.Context) (*Result, error) {
	filters, err := p.filters.ListEnabledFilters()
	if err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return &Result{Message: "No enabled filters found"}, nil
	}

	result := &Result{}
	for _, filter := range filters {
		p.processFilter(ctx, filter, result)
	}
	result.Message = fmt.Sprintf("Successfully processed %d emails with %d errors", result.Processed, result.Errors)
	return result, nil
}

func (p *pipeline) processFilter(ctx context.Context, filter *filterdomain.Filter, result *Result) {
	log := p.log.With().Uint("filter_id", filter.ID).Str("filter", filter.Name).Logger()

	emails, err := p.mail.FetchMatching(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch emails for filter")
		// counted in the run result only; the errors stat tracks error log rows
		metrics.FilterFetchErrors.Inc()
		result.Errors++
		return
	}
	log.Debug().Int("count", len(emails)).Msg("fetched matching emails")

	for _, email := range emails {
		if err := email.Validate(); err != nil {
			log.Warn().Err(err).Msg("skipping malformed email")
			continue
		}
		switch p.processEmail(ctx, filter, email) {
		case domain.LogStatusSuccess:
			result.Processed++
		case domain.LogStatusError:
			result.Errors++
		}
	}
}

// processEmail handles one email and returns the status that was recorded,
// or "" when another run had already recorded it
func (p *pipeline) processEmail(ctx context.Context, filter *filterdomain.Filter, email *emaildomain.Email) domain.LogStatus {
	entry := &domain.ProcessingLog{
		EmailID:      email.ID,
		EmailFrom:    email.From,
		EmailSubject: email.Subject,
		FilterID:     filter.ID,
		FilterName:   filter.Name,
	}

	text, err := p.drafts.GenerateDraft(ctx, email, filter.ResponseTemplate)
	if errors.Is(err, ai.ErrEmptyResponse) {
		text, err = "", nil
	}
	if err != nil {
		return p.record(entry, domain.LogStatusError, errorMessage(err), nil)
	}
	if strings.TrimSpace(text) == "" {
		return p.record(entry, domain.LogStatusWarning, emptyDraftMessage, nil)
	}

	draftID, err := p.mail.CreateDraft(ctx, email, text)
	if err != nil {
		return p.record(entry, domain.LogStatusError, errorMessage(err), nil)
	}
	return p.record(entry, domain.LogStatusSuccess, "", &draftID)
}

func (p *pipeline) record(entry *domain.ProcessingLog, status domain.LogStatus, message string, draftID *string) domain.LogStatus {
	entry.Status = status
	entry.ProcessedAt = p.now()
	entry.DraftID = draftID
	if message != "" {
		entry.ErrorMessage = &message
	}

	log := p.log.With().Str("email_id", entry.EmailID).Str("status", string(status)).Logger()

	created, err := p.logs.CreateIfAbsent(entry)
	if err != nil {
		log.Error().Err(err).Msg("failed to write processing log")
		p.increment(domain.StatErrors)
		metrics.RecordEmailProcessed(string(domain.LogStatusError))
		return domain.LogStatusError
	}
	if !created {
		log.Info().Msg("email already logged by another run, skipping")
		return ""
	}

	p.increment(domain.StatEmailsProcessed)
	switch status {
	case domain.LogStatusSuccess:
		p.increment(domain.StatDraftsCreated)
		log.Info().Str("draft_id", *draftID).Msg("draft created")
	case domain.LogStatusWarning:
		p.increment(domain.StatWarnings)
		log.Warn().Str("reason", message).Msg("email processed with warning")
	case domain.LogStatusError:
		p.increment(domain.StatErrors)
		log.Warn().Str("reason", message).Msg("email processing failed")
	}
	metrics.RecordEmailProcessed(string(status))
	return status
}

func (p *pipeline) increment(field domain.StatField) {
	if err := p.stats.Increment(field, 1); err != nil {
		p.log.Error().Err(err).Str("field", string(field)).Msg("failed to update stats")
	}
}

// errorMessage keeps the provider cause visible in the log entry
func errorMessage(err error) string {
	if appErr, ok := apperr.As(err); ok {
		if appErr.Err != nil {
			return appErr.Message + ": " + appErr.Err.Error()
		}
		return appErr.Message
	}
	return err.Error()
}
