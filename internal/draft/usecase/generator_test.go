package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	authdomain "github.com/fhlgrn/ReadyReply/internal/auth/domain"
	authrepo "github.com/fhlgrn/ReadyReply/internal/auth/repository"
	emaildomain "github.com/fhlgrn/ReadyReply/internal/email/domain"
	settingsdomain "github.com/fhlgrn/ReadyReply/internal/settings/domain"
	settingsrepo "github.com/fhlgrn/ReadyReply/internal/settings/repository"
	settingsusecase "github.com/fhlgrn/ReadyReply/internal/settings/usecase"
	"github.com/fhlgrn/ReadyReply/pkg/ai"
	"github.com/fhlgrn/ReadyReply/pkg/apperr"
	"github.com/fhlgrn/ReadyReply/pkg/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	key, model, prompt string
}

type fakeGenerator struct {
	mu       sync.Mutex
	calls    []call
	reply    string
	err      error
	validKey string // when set, other keys fail
}

func (f *fakeGenerator) Generate(_ context.Context, apiKey, model, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{apiKey, model, prompt})
	if f.err != nil {
		return "", f.err
	}
	if f.validKey != "" && apiKey != f.validKey {
		return "", errors.New("API key not valid")
	}
	return f.reply, nil
}

func (f *fakeGenerator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fixture struct {
	gen      *fakeGenerator
	settings settingsusecase.SettingsUsecase
	tokens   authrepo.TokenRepository
	now      time.Time
}

func newFixture(t *testing.T, fallbackKey string) (*fixture, DraftGenerator) {
	t.Helper()
	db, err := database.NewSQLiteConnection(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&settingsdomain.AppSettings{}, &authdomain.AuthToken{}))

	f := &fixture{
		gen:      &fakeGenerator{reply: "Hi Alice, thanks for reaching out."},
		settings: settingsusecase.NewSettingsUsecase(settingsrepo.NewSettingsRepository(db, settingsdomain.Defaults("gemini-1.5-pro")), zerolog.Nop()),
		tokens:   authrepo.NewTokenRepository(db, nil),
		now:      time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	g := NewDraftGenerator(f.gen, f.settings, f.tokens, Options{
		Provider:    ai.ProviderGemini,
		FallbackKey: fallbackKey,
		StatusTTL:   time.Minute,
		Now:         func() time.Time { return f.now },
	}, zerolog.Nop())
	return f, g
}

var sampleEmail = &emaildomain.Email{
	ID:      "m1",
	From:    "Alice <alice@example.com>",
	Subject: "Need help",
	Body:    "My order has not arrived.",
}

func TestGenerateDraft_UsesSettingsAndFallbackKey(t *testing.T) {
	f, g := newFixture(t, "env-key")
	words := 120
	_, err := f.settings.UpdateSettings(settingsusecase.SettingsUpdateRequest{MaxResponseWords: &words})
	require.NoError(t, err)

	text, err := g.GenerateDraft(context.Background(), sampleEmail, "Be concise")
	require.NoError(t, err)
	assert.Equal(t, "Hi Alice, thanks for reaching out.", text)

	require.Len(t, f.gen.calls, 1)
	c := f.gen.calls[0]
	assert.Equal(t, "env-key", c.key)
	assert.Equal(t, "gemini-1.5-pro", c.model)
	assert.Contains(t, c.prompt, "Subject: Need help")
	assert.Contains(t, c.prompt, "Be concise")
	assert.Contains(t, c.prompt, "NO MORE THAN 120 WORDS")
}

func TestGenerateDraft_StoredKeyWins(t *testing.T) {
	f, g := newFixture(t, "env-key")
	require.NoError(t, f.tokens.Save(&authdomain.AuthToken{Provider: authdomain.ProviderAI, AccessToken: "stored-key"}))

	_, err := g.GenerateDraft(context.Background(), sampleEmail, "Be concise")
	require.NoError(t, err)
	assert.Equal(t, "stored-key", f.gen.calls[0].key)
}

func TestGenerateDraft_Errors(t *testing.T) {
	f, g := newFixture(t, "")
	_, err := g.GenerateDraft(context.Background(), sampleEmail, "x")
	assert.True(t, apperr.Is(err, apperr.CodeUnauthorized))
	assert.Zero(t, f.gen.count())

	f2, g2 := newFixture(t, "env-key")
	f2.gen.err = errors.New("quota exceeded")
	_, err = g2.GenerateDraft(context.Background(), sampleEmail, "x")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.CodeProviderError))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSetModel(t *testing.T) {
	f, g := newFixture(t, "env-key")
	require.NoError(t, g.SetModel("gemini-1.5-flash"))

	_, err := g.GenerateDraft(context.Background(), sampleEmail, "x")
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", f.gen.calls[0].model)
}

func TestCheckConnection_CachesWithinTTL(t *testing.T) {
	f, g := newFixture(t, "env-key")
	ctx := context.Background()

	assert.True(t, g.CheckConnection(ctx).Connected)
	assert.True(t, g.CheckConnection(ctx).Connected)
	assert.Equal(t, 1, f.gen.count())
	assert.Equal(t, ai.PingPrompt, f.gen.calls[0].prompt)

	f.now = f.now.Add(2 * time.Minute)
	f.gen.err = errors.New("unavailable")
	assert.False(t, g.CheckConnection(ctx).Connected)
	assert.Equal(t, 2, f.gen.count())
}

func TestCheckConnection_NoKey(t *testing.T) {
	f, g := newFixture(t, "")
	assert.False(t, g.CheckConnection(context.Background()).Connected)
	assert.Zero(t, f.gen.count())
}

func TestUpdateAPIKey(t *testing.T) {
	f, g := newFixture(t, "")
	f.gen.validKey = "good-key"
	ctx := context.Background()

	err := g.UpdateAPIKey(ctx, "  ")
	assert.True(t, apperr.Is(err, apperr.CodeValidationFailed))

	err = g.UpdateAPIKey(ctx, "bad-key")
	assert.True(t, apperr.Is(err, apperr.CodeInvalidCredentials))
	stored, err := f.tokens.Get(authdomain.ProviderAI)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, g.UpdateAPIKey(ctx, "good-key"))
	stored, err = f.tokens.Get(authdomain.ProviderAI)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "good-key", stored.AccessToken)

	calls := f.gen.count()
	assert.True(t, g.CheckConnection(ctx).Connected)
	assert.Equal(t, calls, f.gen.count())
}
