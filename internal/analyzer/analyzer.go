// Package analyzer turns extracted notice text into a structured
// NoticeAnalysis by way of a single call to the generative service. The
// untyped external JSON is validated and normalized here, at the boundary;
// nothing downstream re-inspects raw model output.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/llm"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

var (
	// ErrMalformedResponse means the service returned something that is
	// not parseable JSON. The raw text is logged, never surfaced.
	ErrMalformedResponse = errors.New("failed to parse AI response")
	// ErrIncompleteResult means the JSON parsed but is missing the
	// required summary field. The partial object is discarded.
	ErrIncompleteResult = errors.New("invalid response format: missing summary")
)

type Analyzer interface {
	Analyze(ctx context.Context, noticeText, key string) (*models.NoticeAnalysis, error)
}

type noticeAnalyzer struct {
	gen    llm.TextGenerator
	logger *utils.Logger
}

func New(gen llm.TextGenerator, logger *utils.Logger) Analyzer {
	return &noticeAnalyzer{
		gen:    gen,
		logger: logger,
	}
}

func (a *noticeAnalyzer) Analyze(ctx context.Context, noticeText, key string) (*models.NoticeAnalysis, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apikey.ErrMissing
	}

	raw, err := a.gen.GenerateText(ctx, key, buildAnalysisPrompt(noticeText))
	if err != nil {
		return nil, err
	}

	cleaned := StripCodeFences(raw)

	var probe any
	if err := json.Unmarshal([]byte(cleaned), &probe); err != nil {
		a.logger.Error("Failed to parse analysis response", "content", cleaned)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := llm.ValidateJSONAgainstSchema(analysisSchema(), []byte(cleaned)); err != nil {
		a.logger.Error("Analysis response failed schema validation", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrIncompleteResult, err)
	}

	var analysis models.NoticeAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		a.logger.Error("Failed to decode analysis response", "content", cleaned)
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	// The recommendation must always be present and well-formed; substitute
	// the fixed default rather than rejecting the whole analysis.
	if analysis.Recommendation.Type == "" {
		analysis.Recommendation = models.DefaultRecommendation()
	}

	a.logger.Info("Notice analyzed",
		"urgency", analysis.Urgency,
		"recommended_response", analysis.Recommendation.Type,
		"summary_length", len(analysis.Summary))

	return &analysis, nil
}

// StripCodeFences removes a single triple-backtick wrapper (with optional
// language tag) around the model output. Content without fences passes
// through untouched.
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		// Drop the language tag line, e.g. "json".
		if firstLine := strings.TrimSpace(trimmed[:i]); firstLine == "" || !strings.ContainsAny(firstLine, "{}[]") {
			trimmed = trimmed[i+1:]
		}
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")

	return strings.TrimSpace(trimmed)
}
