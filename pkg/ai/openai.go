package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIService implements TextGenerator for OpenAI and compatible APIs
type OpenAIService struct {
	name    string
	baseURL string
}

func NewOpenAIService(baseURL string) *OpenAIService {
	return &OpenAIService{name: "openai", baseURL: baseURL}
}

// Generate sends prompt as a single user message. The key arrives per call
// because it can be replaced at runtime.
func (s *OpenAIService) Generate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	cfg := openai.DefaultConfig(apiKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   1024,
		Temperature: 0.7,
		TopP:        0.95,
	})
	if err != nil {
		return "", fmt.Errorf("%s completion failed: %w", s.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
