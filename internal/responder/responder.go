// Package responder drafts a reply letter to an analyzed notice. The
// output is free-form prose by design: no parsing or schema validation is
// applied beyond trimming.
package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/llm"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

type Responder interface {
	Generate(ctx context.Context, analysis *models.NoticeAnalysis, originalText string, responseType models.ResponseType, key string) (*models.ResponseDraft, error)
}

type draftResponder struct {
	gen    llm.TextGenerator
	logger *utils.Logger
}

func New(gen llm.TextGenerator, logger *utils.Logger) Responder {
	return &draftResponder{
		gen:    gen,
		logger: logger,
	}
}

func (r *draftResponder) Generate(ctx context.Context, analysis *models.NoticeAnalysis, originalText string, responseType models.ResponseType, key string) (*models.ResponseDraft, error) {
	if strings.TrimSpace(key) == "" {
		return nil, apikey.ErrMissing
	}

	instruction, ok := responseInstructions[responseType]
	if !ok {
		return nil, fmt.Errorf("unknown response type %q", responseType)
	}

	prompt, err := buildDraftPrompt(analysis, responseType, instruction, strategicGuidance[responseType])
	if err != nil {
		return nil, err
	}

	text, err := r.gen.GenerateText(ctx, key, prompt)
	if err != nil {
		return nil, err
	}

	draft := &models.ResponseDraft{
		ID:           utils.GenerateID(),
		ResponseType: responseType,
		Body:         strings.TrimSpace(text),
		GeneratedAt:  time.Now(),
	}

	r.logger.Info("Response draft generated",
		"response_type", responseType,
		"body_length", len(draft.Body))

	return draft, nil
}

func buildDraftPrompt(analysis *models.NoticeAnalysis, responseType models.ResponseType, instruction, guidance string) (string, error) {
	serialized, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize analysis: %w", err)
	}

	risk := analysis.RiskAssessment
	if risk == nil {
		risk = &models.RiskAssessment{}
	}
	riskLevel := risk.Level
	if riskLevel == "" {
		riskLevel = "medium"
	}
	riskFactors := joinOr(risk.Factors, "Not specified")
	mitigations := joinOr(risk.MitigationStrategies, "Standard compliance approach")

	var b strings.Builder
	fmt.Fprintf(&b, `You are a legal assistant helping to draft a professional response to a government notice.

Original Notice Analysis:
%s

Response Type Selected: %s
Strategic Approach: %s
When to Use: %s

Please generate a professional, formal letter response that:

1. Uses proper business letter format with current date
2. Is addressed to the appropriate government authority (use actual details from the notice)
3. References the original notice appropriately (use actual notice number and date)
4. %s
5. Maintains a respectful and professional tone throughout
6. Includes all necessary legal and procedural elements
7. Is strategically crafted to favor the recipient's interests while remaining compliant
8. Addresses the specific requirements and deadlines mentioned in the analysis
9. Incorporates relevant strategic advice from the analysis

Strategic considerations for this response:
- Risk Level: %s
- Key Risk Factors: %s
- Mitigation Strategies: %s

Format the response as a complete business letter with:
- Current date
- Recipient address (use actual authority details from notice)
- Subject line referencing the actual notice
- Salutation
- Body paragraphs that are strategically structured
- Professional closing
- Signature block with placeholder for sender details

Make the response comprehensive but concise. Ensure it addresses the specific requirements and deadlines mentioned in the analysis while protecting the recipient's interests.
`, serialized, responseType, instruction, guidance, instruction, riskLevel, riskFactors, mitigations)

	if responseType == models.ResponseClarification {
		b.WriteString("\nImportant: Since this is a clarification request, include specific, intelligent questions that could potentially expose weaknesses in the government's position or buy valuable time.\n")
	}

	return b.String(), nil
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
