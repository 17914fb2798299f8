// Package llm wraps calls to the external generative-AI service. Each call
// is prompt-in/text-out; prompt construction and response parsing belong to
// the callers.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

// Service failures the workflow cares about. Anything else is passed
// through wrapped in ErrServiceFailure with the provider's message intact.
var (
	ErrInvalidAPIKey  = errors.New("invalid API key")
	ErrQuotaExceeded  = errors.New("API quota exceeded")
	ErrServiceFailure = errors.New("generative service failure")
)

// TextGenerator issues a single prompt to the model and returns its raw
// text output. Exactly one request per invocation; no retries.
type TextGenerator interface {
	GenerateText(ctx context.Context, apiKey, prompt string) (string, error)
}

type geminiGenerator struct {
	model  string
	logger *utils.Logger
}

// NewGeminiGenerator returns a TextGenerator backed by the Gemini API.
// The API key is supplied per call because a request-scoped key takes
// precedence over the server-wide one.
func NewGeminiGenerator(model string, logger *utils.Logger) TextGenerator {
	return &geminiGenerator{
		model:  model,
		logger: logger,
	}
}

func (g *geminiGenerator) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		g.logger.Error("Failed to create Gemini client", "error", err)
		return "", classifyServiceError(err)
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		g.logger.Error("Gemini call failed", "model", g.model, "error", err)
		return "", classifyServiceError(err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: model returned an empty response", ErrServiceFailure)
	}

	return text, nil
}

// classifyServiceError maps provider errors onto the local taxonomy. The
// SDK exposes a structured APIError; the message checks cover the cases
// where the provider reports key problems as plain 400s.
func classifyServiceError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401, 403:
			return fmt.Errorf("%w: %s", ErrInvalidAPIKey, apiErr.Message)
		case 429:
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
		if apiErr.Status == "RESOURCE_EXHAUSTED" {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, apiErr.Message)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(msg, "API key not valid") || strings.Contains(msg, "Invalid API key"):
		return fmt.Errorf("%w: %v", ErrInvalidAPIKey, err)
	case strings.Contains(msg, "QUOTA_EXCEEDED") || strings.Contains(strings.ToLower(msg), "quota"):
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}

	return fmt.Errorf("%w: %v", ErrServiceFailure, err)
}
