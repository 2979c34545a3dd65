package ai

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the provider answers without text
var ErrEmptyResponse = errors.New("ai: provider returned no text")

// TextGenerator is the interface every AI provider implements.
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, Anthropic, etc.)
type TextGenerator interface {
	// Generate sends one prompt and returns the raw completion text.
	// apiKey may be empty for providers that do not need one.
	Generate(ctx context.Context, apiKey, model, prompt string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini    ProviderType = "gemini"
	ProviderOpenAI    ProviderType = "openai"
	ProviderOllama    ProviderType = "ollama"
	ProviderAnthropic ProviderType = "anthropic"
)

// RequiresKey reports whether calls need an API key
func (p ProviderType) RequiresKey() bool {
	return p != ProviderOllama
}

// DefaultModel is the model used until one is chosen in settings
func (p ProviderType) DefaultModel() string {
	switch p {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderOllama:
		return "llama3"
	case ProviderAnthropic:
		return "claude-3-7-sonnet-20250219"
	default:
		return "gemini-1.5-pro"
	}
}
