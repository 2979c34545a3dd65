package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	LogFormat  string
	CORSOrigin string

	DBDriver    string
	DatabaseURL string

	// Mail provider: "gmail" or "imap"
	MailProvider      string
	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	IMAPAddr          string
	IMAPUsername      string
	IMAPPassword      string
	IMAPMailbox       string
	IMAPDraftsMailbox string
	IMAPInsecure      bool

	// AI provider: "gemini", "openai", "anthropic" or "ollama"
	AIProvider       string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	OllamaBaseURL    string
	AIStatusTTL      time.Duration

	EncryptionKey    string
	SchedulerEnabled bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	statusTTL := 5 * time.Minute
	if ttl := os.Getenv("AI_STATUS_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			statusTTL = parsed
		}
	}

	return &Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		CORSOrigin: getEnv("CORS_ORIGIN", ""),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=readyreply port=5432 sslmode=disable"),

		MailProvider:      strings.ToLower(getEnv("MAIL_PROVIDER", "gmail")),
		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "urn:ietf:wg:oauth:2.0:oob"),
		IMAPAddr:          getEnv("IMAP_ADDR", ""),
		IMAPUsername:      getEnv("IMAP_USERNAME", ""),
		IMAPPassword:      getEnv("IMAP_PASSWORD", ""),
		IMAPMailbox:       getEnv("IMAP_MAILBOX", "INBOX"),
		IMAPDraftsMailbox: getEnv("IMAP_DRAFTS_MAILBOX", "Drafts"),
		IMAPInsecure:      getBool("IMAP_INSECURE", false),

		AIProvider:       strings.ToLower(getEnv("AI_PROVIDER", "gemini")),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnv("ANTHROPIC_BASE_URL", ""),
		OllamaBaseURL:    getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		AIStatusTTL:      statusTTL,

		EncryptionKey:    getEnv("ENCRYPTION_KEY", ""),
		SchedulerEnabled: getBool("SCHEDULER_ENABLED", false),
	}
}

// FallbackAIKey returns the environment key for the configured AI provider.
func (c *Config) FallbackAIKey() string {
	switch c.AIProvider {
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
