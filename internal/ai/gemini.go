package ai

import (
	"context"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/atomiclab/atomic/internal/errors"
)

// GeminiGenerator produces discussions through the Gemini API.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerator creates a discussion generator backed by Gemini.
// The API key is read from apiKeyEnvVar; a missing key returns
// ErrAINotConfigured so callers can degrade up front instead of at
// request time.
func NewGeminiGenerator(ctx context.Context, model, apiKeyEnvVar string, timeout time.Duration) (*GeminiGenerator, error) {
	apiKey := os.Getenv(apiKeyEnvVar)
	if apiKey == "" {
		return nil, errors.Wrapf(errors.ErrAINotConfigured, "environment variable %s is empty", apiKeyEnvVar)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &GeminiGenerator{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Discuss sends the discussion prompt to the model and returns its text.
func (g *GeminiGenerator) Discuss(ctx context.Context, req DiscussionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromText(buildPrompt(req), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", errors.Wrapf(err, "gemini discussion for %s(%s)", req.Element, req.Face)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.Wrapf(errors.ErrAIEmptyResponse, "model %s", g.model)
	}
	return text, nil
}
