package analyzer

import "fmt"

const analysisPromptTemplate = `You are a legal assistant specializing in government notice analysis. Analyze the following government notice and provide a structured analysis in JSON format.

Notice Text:
%s

Please analyze this notice and return a JSON object with the following structure:
{
  "summary": "Brief 2-3 sentence summary of the notice",
  "urgency": "low/medium/high - based on deadlines and consequences",
  "complianceRequired": "required/recommended/optional",
  "deadline": "Extract any specific deadlines mentioned",
  "keyPoints": ["Array of 3-5 most important points"],
  "requiredActions": ["Array of specific actions that must be taken"],
  "documentsNeeded": ["Array of documents that may be required"],
  "financialImplications": "true/false - whether there are financial penalties or costs",
  "noticeType": "Classification of the notice type",
  "issuingAuthority": "The government body that issued this notice",
  "legalBasis": "The legal authority or act under which this notice is issued",
  "recommendedResponseType": {
    "type": "acknowledgment/compliance/clarification/objection",
    "reasoning": "Detailed explanation of why this response type is recommended in favor of the recipient",
    "confidence": "high/medium/low - confidence level in this recommendation",
    "alternativeOptions": ["Array of other viable response types with brief reasons"]
  },
  "riskAssessment": {
    "level": "low/medium/high",
    "factors": ["Array of risk factors identified"],
    "mitigationStrategies": ["Array of strategies to minimize negative outcomes"]
  },
  "strategicAdvice": "Tactical advice on how to approach this notice to minimize negative impact and maximize positive outcomes for the recipient"
}

IMPORTANT: When recommending response type, prioritize what is most beneficial for the notice recipient. Consider:
- Legal consequences of different response approaches
- Time sensitivity and deadlines
- Potential for negotiation or mitigation
- Strength of the government's case
- Available defenses or explanations
- Cost-benefit analysis of different approaches

Focus on practical, actionable insights that favor the recipient while remaining legally compliant. Be precise and professional. If any information is not clearly stated in the notice, indicate "Not specified" for that field.

Respond ONLY with a valid JSON object (no markdown, no code blocks, no surrounding prose).`

func buildAnalysisPrompt(noticeText string) string {
	return fmt.Sprintf(analysisPromptTemplate, noticeText)
}

// analysisSchema is the minimal structural contract the raw model output
// must satisfy before typed decoding: a JSON object whose summary is a
// non-empty string. Everything else is normalized after decoding.
func analysisSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []any{"summary"},
		"properties": map[string]any{
			"summary": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
		},
	}
}
