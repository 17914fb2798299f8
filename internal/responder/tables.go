package responder

import "github.com/BerylCAtieno/legal-notice-assistant/internal/models"

// responseInstructions and strategicGuidance are fixed per response type
// and baked into the draft prompt. They are not user-editable.
var responseInstructions = map[models.ResponseType]string{
	models.ResponseAcknowledgment: "Generate a formal acknowledgment letter that confirms receipt of the notice and understanding of the requirements. This should be professional but not commit to specific actions beyond acknowledgment.",
	models.ResponseCompliance:     "Generate a detailed compliance response that outlines specific steps being taken to meet the requirements. Include timelines, commitments, and demonstrate good faith effort to comply.",
	models.ResponseClarification:  "Generate a professional letter requesting clarification on unclear aspects of the notice. This is a strategic approach to buy time and potentially identify weaknesses in the government's position.",
	models.ResponseObjection:      "Generate a formal objection letter that respectfully contests the notice with proper legal grounds. This should be used only when there are legitimate grounds for dispute.",
}

var strategicGuidance = map[models.ResponseType]string{
	models.ResponseAcknowledgment: "Use when you need time to prepare a more detailed response or when the notice is primarily informational.",
	models.ResponseCompliance:     "Use when compliance is clearly required and resistance would be futile or counterproductive.",
	models.ResponseClarification:  "Use when the notice is unclear, contains errors, or when you need more time to prepare a defense.",
	models.ResponseObjection:      "Use only when you have strong legal grounds to contest the notice and the potential benefits outweigh the risks.",
}

// TypeCatalog describes each response type for selection UIs.
func TypeCatalog() []models.ResponseTypeInfo {
	return []models.ResponseTypeInfo{
		{
			Type:        models.ResponseAcknowledgment,
			Label:       "Acknowledgment",
			Description: "Simple acknowledgment of receipt",
			RiskLevel:   "low",
			Timeline:    "Quick response",
			WhenToUse:   "When you need time to prepare or when the notice is informational",
		},
		{
			Type:        models.ResponseCompliance,
			Label:       "Compliance Response",
			Description: "Detailed compliance commitment",
			RiskLevel:   "low",
			Timeline:    "Immediate action",
			WhenToUse:   "When compliance is clearly required and resistance would be futile",
		},
		{
			Type:        models.ResponseClarification,
			Label:       "Request Clarification",
			Description: "Ask for additional information",
			RiskLevel:   "medium",
			Timeline:    "Buys time",
			WhenToUse:   "When the notice is unclear or when you need more time to prepare",
		},
		{
			Type:        models.ResponseObjection,
			Label:       "Formal Objection",
			Description: "Contest the notice (if applicable)",
			RiskLevel:   "high",
			Timeline:    "Extended process",
			WhenToUse:   "Only when you have strong legal grounds and benefits outweigh risks",
		},
	}
}
