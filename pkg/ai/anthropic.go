package ai

// AnthropicBaseURL is Anthropic's OpenAI-compatible API root
const AnthropicBaseURL = "https://api.anthropic.com/v1"

// NewAnthropicService returns a TextGenerator for Claude models. Anthropic
// serves the chat completions wire format, so the OpenAI client is reused
// with a different base URL.
func NewAnthropicService(baseURL string) *OpenAIService {
	if baseURL == "" {
		baseURL = AnthropicBaseURL
	}
	return &OpenAIService{name: "anthropic", baseURL: baseURL}
}
