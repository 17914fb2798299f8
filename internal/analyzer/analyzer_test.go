package analyzer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

type stubGenerator struct {
	calls      int
	lastPrompt string
	output     string
	err        error
}

func (s *stubGenerator) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newTestAnalyzer(gen *stubGenerator) Analyzer {
	return New(gen, utils.NewLogger("error"))
}

func TestAnalyzeDefaultsRecommendation(t *testing.T) {
	gen := &stubGenerator{output: "```json\n{\"summary\":\"X\"}\n```"}
	a := newTestAnalyzer(gen)

	result, err := a.Analyze(context.Background(), "notice text", "test-key")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Summary != "X" {
		t.Errorf("summary = %q, want %q", result.Summary, "X")
	}
	if !reflect.DeepEqual(result.Recommendation, models.DefaultRecommendation()) {
		t.Errorf("expected default recommendation, got %+v", result.Recommendation)
	}
	if gen.calls != 1 {
		t.Errorf("expected exactly one service call, got %d", gen.calls)
	}
}

func TestAnalyzeKeepsModelRecommendation(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"S","recommendedResponseType":{"type":"objection","reasoning":"r","confidence":"high"}}`}
	a := newTestAnalyzer(gen)

	result, err := a.Analyze(context.Background(), "notice text", "test-key")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Recommendation.Type != "objection" {
		t.Errorf("recommendation type = %q, want objection", result.Recommendation.Type)
	}
}

func TestAnalyzeMissingSummary(t *testing.T) {
	for _, output := range []string{
		`{"urgency":"low"}`,
		`{"summary":""}`,
		`{"summary":42}`,
	} {
		gen := &stubGenerator{output: output}
		a := newTestAnalyzer(gen)

		_, err := a.Analyze(context.Background(), "notice text", "test-key")
		if !errors.Is(err, ErrIncompleteResult) {
			t.Errorf("output %s: expected ErrIncompleteResult, got %v", output, err)
		}
	}
}

func TestAnalyzeMalformedResponse(t *testing.T) {
	gen := &stubGenerator{output: "I could not produce JSON today, sorry."}
	a := newTestAnalyzer(gen)

	_, err := a.Analyze(context.Background(), "notice text", "test-key")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestAnalyzeMissingKeyMakesNoCall(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	a := newTestAnalyzer(gen)

	_, err := a.Analyze(context.Background(), "notice text", "")
	if !errors.Is(err, apikey.ErrMissing) {
		t.Fatalf("expected apikey.ErrMissing, got %v", err)
	}
	if gen.calls != 0 {
		t.Errorf("expected no service calls, got %d", gen.calls)
	}
}

func TestAnalyzePromptEmbedsNotice(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	a := newTestAnalyzer(gen)

	noticeText := "Pay the assessed penalty by the end of the quarter."
	if _, err := a.Analyze(context.Background(), noticeText, "test-key"); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if !strings.Contains(gen.lastPrompt, noticeText) {
		t.Error("prompt does not embed the notice text")
	}
	if !strings.Contains(gen.lastPrompt, `"recommendedResponseType"`) {
		t.Error("prompt does not describe the output schema")
	}
	if !strings.Contains(gen.lastPrompt, "Not specified") {
		t.Error("prompt does not instruct the model about unknown fields")
	}
}

func TestAnalyzeCoercesFinancialFlag(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X","financialImplications":true}`}
	a := newTestAnalyzer(gen)

	result, err := a.Analyze(context.Background(), "notice text", "test-key")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.FinancialImplications != "true" {
		t.Errorf("financialImplications = %q, want %q", result.FinancialImplications, "true")
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without newline", "```{\"a\":1}```", `{"a":1}`},
		{"surrounding whitespace", "  ```json\n{\"a\":1}\n```  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.in); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
