package scheduler

import (
	"context"
	"time"

	"github.com/fhlgrn/ReadyReply/internal/processing/usecase"
	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/rs/zerolog"
)

// retryInterval is used when settings cannot be read
const retryInterval = time.Minute

// MailCheckScheduler runs the pipeline every mailCheckFrequency minutes.
// The frequency is re-read after each cycle so edits apply without a restart.
type MailCheckScheduler struct {
	pipeline usecase.Pipeline
	settings settingsusecase.SettingsUsecase
	log      zerolog.Logger
	unit     time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewMailCheckScheduler creates a new scheduler
func NewMailCheckScheduler(pipeline usecase.Pipeline, settings settingsusecase.SettingsUsecase, log zerolog.Logger) *MailCheckScheduler {
	return &MailCheckScheduler{
		pipeline: pipeline,
		settings: settings,
		log:      logger.Component(log, "scheduler"),
		unit:     time.Minute,
		done:     make(chan struct{}),
	}
}

// Start begins the scheduler loop. The loop ends when ctx is cancelled or
// Stop is called; a cycle already running is allowed to finish.
func (s *MailCheckScheduler) Start(ctx context.Context) {
	s.log.Info().Msg("starting mail check scheduler")
	ctx, s.cancel = context.WithCancel(ctx)

	go func() {
		defer close(s.done)
		for {
			timer := time.NewTimer(s.runOnce(ctx))
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				s.log.Info().Msg("scheduler stopped")
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for the current cycle
func (s *MailCheckScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// runOnce triggers a run when the service is enabled and returns the delay
// until the next cycle
func (s *MailCheckScheduler) runOnce(ctx context.Context) time.Duration {
	if ctx.Err() != nil {
		return retryInterval
	}
	settings, err := s.settings.GetSettings()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read settings")
		return retryInterval
	}
	next := time.Duration(settings.MailCheckFrequency) * s.unit
	if next <= 0 {
		next = retryInterval
	}
	if !settings.ServiceEnabled {
		return next
	}

	result, err := s.pipeline.Run(ctx, usecase.TriggerScheduled)
	switch {
	case apperr.Is(err, apperr.CodeConflict), apperr.Is(err, apperr.CodeServiceDisabled):
		s.log.Debug().Err(err).Msg("scheduled run skipped")
	case err != nil:
		s.log.Error().Err(err).Msg("scheduled run failed")
	default:
		s.log.Info().Int("processed", result.Processed).Int("errors", result.Errors).Msg("scheduled run completed")
	}
	return next
}
