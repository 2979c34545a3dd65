package ai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fhlgrn/ReadyReply/pkg/gemini"
	"github.com/fhlgrn/ReadyReply/pkg/metrics"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType // "gemini", "openai", "anthropic" or "ollama"

	// OpenAI config, empty base URL means api.openai.com
	OpenAIBaseURL string

	// Anthropic config, empty base URL means api.anthropic.com
	AnthropicBaseURL string

	// Ollama config
	OllamaBaseURL string // e.g., "http://localhost:11434"
}

// NewTextGenerator creates a TextGenerator based on the config
// This is the factory function - switch AI provider by changing config.Provider
func NewTextGenerator(cfg Config) (TextGenerator, error) {
	var gen TextGenerator
	switch cfg.Provider {
	case ProviderGemini, "":
		cfg.Provider = ProviderGemini
		gen = gemini.NewGeminiService()
	case ProviderOpenAI:
		gen = NewOpenAIService(cfg.OpenAIBaseURL)
	case ProviderAnthropic:
		gen = NewAnthropicService(cfg.AnthropicBaseURL)
	case ProviderOllama:
		gen = NewOllamaService(cfg.OllamaBaseURL)
	default:
		return nil, fmt.Errorf("unsupported AI provider %q", cfg.Provider)
	}
	return &instrumented{provider: cfg.Provider, next: gen}, nil
}

// instrumented records call latency per provider
type instrumented struct {
	provider ProviderType
	next     TextGenerator
}

func (i *instrumented) Generate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	start := time.Now()
	text, err := i.next.Generate(ctx, apiKey, model, prompt)
	if errors.Is(err, gemini.ErrNoCandidates) {
		err = ErrEmptyResponse
	}
	status := "success"
	switch {
	case errors.Is(err, ErrEmptyResponse):
		status = "empty"
	case err != nil:
		status = "error"
	}
	metrics.RecordAICall(string(i.provider), status, time.Since(start))
	return text, err
}
