package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrNoCandidates is returned when Gemini answers without any text part
var ErrNoCandidates = errors.New("gemini: response contained no text")

// GeminiService calls the Gemini API. The API key is passed on every call
// so a key stored at runtime takes effect without a restart.
type GeminiService struct {
	opts []option.ClientOption
}

// NewGeminiService accepts extra client options, mostly for tests
func NewGeminiService(opts ...option.ClientOption) *GeminiService {
	return &GeminiService{opts: opts}
}

func (g *GeminiService) Generate(ctx context.Context, apiKey, model, prompt string) (string, error) {
	opts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, g.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	m := client.GenerativeModel(model)
	m.SetTemperature(0.7)
	m.SetTopK(40)
	m.SetTopP(0.95)
	m.SetMaxOutputTokens(1024)

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	return responseText(resp)
}

// responseText joins the text parts of the first candidate that has any
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrNoCandidates
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
		if sb.Len() > 0 {
			return sb.String(), nil
		}
	}
	return "", ErrNoCandidates
}
