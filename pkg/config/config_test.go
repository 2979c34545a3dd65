package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("AI_STATUS_TTL", "")
	t.Setenv("SCHEDULER_ENABLED", "")
	t.Setenv("MAIL_PROVIDER", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, "gmail", cfg.MailProvider)
	assert.Equal(t, 5*time.Minute, cfg.AIStatusTTL)
	assert.False(t, cfg.SchedulerEnabled)
	assert.Equal(t, "INBOX", cfg.IMAPMailbox)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("AI_STATUS_TTL", "30s")
	t.Setenv("SCHEDULER_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "sk-test", cfg.FallbackAIKey())
	assert.Equal(t, 30*time.Second, cfg.AIStatusTTL)
	assert.True(t, cfg.SchedulerEnabled)
}

func TestFallbackAIKeyAnthropic(t *testing.T) {
	t.Setenv("AI_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("ANTHROPIC_BASE_URL", "http://proxy.local/v1")

	cfg := Load()

	assert.Equal(t, "sk-ant-test", cfg.FallbackAIKey())
	assert.Equal(t, "http://proxy.local/v1", cfg.AnthropicBaseURL)
}

func TestLoadIgnoresBadDuration(t *testing.T) {
	t.Setenv("AI_STATUS_TTL", "soon")

	assert.Equal(t, 5*time.Minute, Load().AIStatusTTL)
}
