package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	authdomain "github.com/fhlgrn/ReadyReply/internal/auth/domain"
	authrepo "github.com/fhlgrn/ReadyReply/internal/auth/repository"
	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/ai"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/logger"

	"github.com/rs/zerolog"
)

// Options configures the draft generator
type Options struct {
	Provider    ai.ProviderType
	FallbackKey string        // used when no key was stored at runtime
	StatusTTL   time.Duration // how long a connection check result is trusted
	Now         func() time.Time
}

type statusCache struct {
	connected bool
	key       string
	model     string
	checkedAt time.Time
}

type draftGenerator struct {
	gen      ai.TextGenerator
	settings settingsusecase.SettingsUsecase
	tokens   authrepo.TokenRepository
	opts     Options
	log      zerolog.Logger

	mu     sync.Mutex
	status *statusCache
}

// NewDraftGenerator creates a new DraftGenerator
func NewDraftGenerator(
	gen ai.TextGenerator,
	settings settingsusecase.SettingsUsecase,
	tokens authrepo.TokenRepository,
	opts Options,
	log zerolog.Logger,
) DraftGenerator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = 5 * time.Minute
	}
	if opts.Provider == "" {
		opts.Provider = ai.ProviderGemini
	}
	return &draftGenerator{
		gen:      gen,
		settings: settings,
		tokens:   tokens,
		opts:     opts,
		log:      logger.Component(log, "draft_generator"),
	}
}

func (g *draftGenerator) GenerateDraft(ctx context.Context, email *emaildomain.Email, template string) (string, error) {
	settings, err := g.settings.GetSettings()
	if err != nil {
		return "", err
	}
	key, err := g.apiKey()
	if err != nil {
		return "", err
	}
	if key == "" && g.opts.Provider.RequiresKey() {
		return "", apperr.Unauthorized("AI provider is not authenticated")
	}

	prompt := ai.BuildDraftPrompt(ai.DraftInput{
		From:     email.From,
		Subject:  email.Subject,
		Body:     email.Body,
		Template: template,
		MaxWords: settings.WordLimit(),
	})

	text, err := g.gen.Generate(ctx, key, settings.AIModel, prompt)
	if err != nil {
		return "", apperr.Provider("Failed to generate draft", err)
	}

	g.log.Debug().
		Str("email_id", email.ID).
		Str("model", settings.AIModel).
		Int("chars", len(text)).
		Msg("draft generated")
	return text, nil
}

func (g *draftGenerator) SetModel(model string) error {
	if err := g.settings.SetModel(model); err != nil {
		return err
	}
	g.invalidate()
	return nil
}

func (g *draftGenerator) CheckConnection(ctx context.Context) emaildomain.ConnectionStatus {
	key, err := g.apiKey()
	if err != nil {
		g.log.Warn().Err(err).Msg("failed to load AI key")
		return emaildomain.ConnectionStatus{}
	}
	if key == "" && g.opts.Provider.RequiresKey() {
		return emaildomain.ConnectionStatus{}
	}
	settings, err := g.settings.GetSettings()
	if err != nil {
		return emaildomain.ConnectionStatus{}
	}

	now := g.opts.Now()
	g.mu.Lock()
	cached := g.status
	g.mu.Unlock()
	if cached != nil && cached.key == key && cached.model == settings.AIModel &&
		now.Sub(cached.checkedAt) < g.opts.StatusTTL {
		return emaildomain.ConnectionStatus{Connected: cached.connected}
	}

	_, err = g.gen.Generate(ctx, key, settings.AIModel, ai.PingPrompt)
	connected := err == nil
	if err != nil {
		g.log.Warn().Err(err).Str("model", settings.AIModel).Msg("AI connection check failed")
	}

	g.mu.Lock()
	g.status = &statusCache{connected: connected, key: key, model: settings.AIModel, checkedAt: now}
	g.mu.Unlock()
	return emaildomain.ConnectionStatus{Connected: connected}
}

func (g *draftGenerator) UpdateAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return apperr.Validation("API key is required")
	}
	settings, err := g.settings.GetSettings()
	if err != nil {
		return err
	}

	if _, err := g.gen.Generate(ctx, key, settings.AIModel, ai.PingPrompt); err != nil {
		g.log.Warn().Err(err).Msg("rejected AI key")
		return apperr.InvalidCredentials("Invalid API key").WithError(err)
	}

	now := g.opts.Now()
	if err := g.tokens.Save(&authdomain.AuthToken{
		Provider:          authdomain.ProviderAI,
		AccessToken:       key,
		LastAuthenticated: now,
	}); err != nil {
		return apperr.Internal("Failed to store API key", err)
	}

	g.mu.Lock()
	g.status = &statusCache{connected: true, key: key, model: settings.AIModel, checkedAt: now}
	g.mu.Unlock()

	g.log.Info().Msg("AI key updated")
	return nil
}

// apiKey prefers the key stored at runtime over the environment key
func (g *draftGenerator) apiKey() (string, error) {
	token, err := g.tokens.Get(authdomain.ProviderAI)
	if err != nil {
		return "", apperr.Internal("Failed to load AI credentials", err)
	}
	if token != nil && token.AccessToken != "" {
		return token.AccessToken, nil
	}
	return g.opts.FallbackKey, nil
}

func (g *draftGenerator) invalidate() {
	g.mu.Lock()
	g.status = nil
	g.mu.Unlock()
}
