package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Generator produces a free-form model response for a prompt. The
// production implementation wraps the Gemini SDK; tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGeminiClient constructs the Gemini client from an explicit API key.
// Clients are built once by the caller and passed down; there is no
// package-level client state.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}
	return genai.NewClient(ctx, option.WithAPIKey(apiKey))
}

// GeminiGenerator generates content through one Gemini model
type GeminiGenerator struct {
	model *genai.GenerativeModel
}

// NewGeminiGenerator creates a generator bound to the named model
func NewGeminiGenerator(client *genai.Client, modelName string) *GeminiGenerator {
	return &GeminiGenerator{model: client.GenerativeModel(modelName)}
}

// Generate sends the prompt and concatenates the text parts of the first
// candidate
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("response contains no candidates")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", errors.New("response contains no text content")
	}
	return b.String(), nil
}

// IsRateLimited reports whether an error is a rate-limit or quota
// exhaustion signal from the classification service
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code == http.StatusTooManyRequests {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") ||
		strings.Contains(strings.ToLower(msg), "quota")
}
