package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	api "github.com/fhlgrn/ReadyReply/cmd/api"
	authdomain "github.com/fhlgrn/ReadyReply/internal/auth/domain"
	authRepo "github.com/fhlgrn/ReadyReply/internal/auth/repository"
	authUsecase "github.com/fhlgrn/ReadyReply/internal/auth/usecase"
	draftUsecase "github.com/fhlgrn/ReadyReply/internal/draft/usecase"
	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	filterdomain "github.com/fhlgrn/ReadyReply/internal/filter/domain"
	filterRepo "github.com/fhlgrn/ReadyReply/internal/filter/repository"
	filterUsecase "github.com/fhlgrn/ReadyReply/internal/filter/usecase"
	processingdomain "github.com/fhlgrn/ReadyReply/internal/processing/domain"
	processingRepo "github.com/fhlgrn/ReadyReply/internal/processing/repository"
	"github.com/fhlgrn/ReadyReply/internal/processing/scheduler"
	processingUsecase "github.com/fhlgrn/ReadyReply/internal/processing/usecase"
	settingsdomain "github.com/fhlgrn/ReadyReply/internal/settings/domain"
	settingsRepo "github.com/fhlgrn/ReadyReply/internal/settings/repository"
	settingsUsecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/ai"
	"github.com/fhlgrn/ReadyReply/pkg/config"
	"github.com/fhlgrn/ReadyReply/pkg/crypto"
	"github.com/fhlgrn/ReadyReply/pkg/database"
	"github.com/fhlgrn/ReadyReply/pkg/gmail"
	"github.com/fhlgrn/ReadyReply/pkg/imap"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&filterdomain.Filter{},
		&processingdomain.ProcessingLog{},
		&processingdomain.AppStats{},
		&settingsdomain.AppSettings{},
		&authdomain.AuthToken{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	provider := ai.ProviderType(cfg.AIProvider)

	// Initialize repositories (dependency injection)
	cipher := crypto.NewCipher(cfg.EncryptionKey)
	if cipher == nil {
		log.Warn().Msg("ENCRYPTION_KEY not set, provider tokens are stored in plain text")
	}
	tokenRepository := authRepo.NewTokenRepository(db, cipher)
	filterRepository := filterRepo.NewGormFilterRepository(db)
	logRepository := processingRepo.NewProcessingLogRepository(db)
	statsRepository := processingRepo.NewStatsRepository(db)
	settingsRepository := settingsRepo.NewSettingsRepository(db, settingsdomain.Defaults(provider.DefaultModel()))

	// Mail gateway
	var mailGateway emaildomain.MailGateway
	switch cfg.MailProvider {
	case "imap":
		mailGateway = imap.NewService(imap.Config{
			Addr:          cfg.IMAPAddr,
			Username:      cfg.IMAPUsername,
			Password:      cfg.IMAPPassword,
			Mailbox:       cfg.IMAPMailbox,
			DraftsMailbox: cfg.IMAPDraftsMailbox,
			Insecure:      cfg.IMAPInsecure,
		}, logRepository, log)
	case "gmail", "":
		if cfg.GmailClientID == "" || cfg.GmailClientSecret == "" {
			log.Warn().Msg("GMAIL_CLIENT_ID or GMAIL_CLIENT_SECRET not set, mailbox authorization will fail")
		}
		mailGateway = gmail.NewService(gmail.Config{
			ClientID:     cfg.GmailClientID,
			ClientSecret: cfg.GmailClientSecret,
			RedirectURI:  cfg.GmailRedirectURI,
		}, authRepo.NewMailTokenStore(tokenRepository), logRepository, log)
	default:
		log.Fatal().Str("provider", cfg.MailProvider).Msg("unsupported mail provider")
	}

	// AI provider
	textGenerator, err := ai.NewTextGenerator(ai.Config{
		Provider:         provider,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		AnthropicBaseURL: cfg.AnthropicBaseURL,
		OllamaBaseURL:    cfg.OllamaBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize AI provider")
	}
	log.Info().Str("provider", string(provider)).Str("mail", cfg.MailProvider).Msg("providers initialized")

	// Initialize use cases (dependency injection)
	settingsUsecaseInstance := settingsUsecase.NewSettingsUsecase(settingsRepository, log)
	filterUsecaseInstance := filterUsecase.NewFilterUsecase(filterRepository, log)
	draftGenerator := draftUsecase.NewDraftGenerator(textGenerator, settingsUsecaseInstance, tokenRepository, draftUsecase.Options{
		Provider:    provider,
		FallbackKey: cfg.FallbackAIKey(),
		StatusTTL:   cfg.AIStatusTTL,
	}, log)
	pipeline := processingUsecase.NewPipeline(settingsUsecaseInstance, filterUsecaseInstance, mailGateway, draftGenerator, logRepository, statsRepository, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mailScheduler *scheduler.MailCheckScheduler
	if cfg.SchedulerEnabled {
		mailScheduler = scheduler.NewMailCheckScheduler(pipeline, settingsUsecaseInstance, log)
		mailScheduler.Start(ctx)
	}

	// Initialize HTTP handler
	handler := api.NewHandler(api.Usecases{
		Auth:       authUsecase.NewAuthUsecase(mailGateway, draftGenerator, log),
		Filters:    filterUsecaseInstance,
		Settings:   settingsUsecaseInstance,
		Pipeline:   pipeline,
		Processing: processingUsecase.NewProcessingUsecase(logRepository, statsRepository),
	}, cfg.CORSOrigin, log)

	// Start server
	srv := handler.Server(":" + cfg.Port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if mailScheduler != nil {
		mailScheduler.Stop()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}
