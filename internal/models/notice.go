package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Document is an accepted upload. It is immutable once stored in the
// workflow; a new upload replaces it wholesale.
type Document struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ResponseType is the strategic posture for replying to a notice.
type ResponseType string

const (
	ResponseAcknowledgment ResponseType = "acknowledgment"
	ResponseCompliance     ResponseType = "compliance"
	ResponseClarification  ResponseType = "clarification"
	ResponseObjection      ResponseType = "objection"
)

// ResponseTypes lists all valid response types in display order.
func ResponseTypes() []ResponseType {
	return []ResponseType{
		ResponseAcknowledgment,
		ResponseCompliance,
		ResponseClarification,
		ResponseObjection,
	}
}

// ParseResponseType validates a user-provided response type string.
func ParseResponseType(s string) (ResponseType, error) {
	rt := ResponseType(strings.ToLower(strings.TrimSpace(s)))
	switch rt {
	case ResponseAcknowledgment, ResponseCompliance, ResponseClarification, ResponseObjection:
		return rt, nil
	}
	return "", fmt.Errorf("unknown response type %q", s)
}

// FinancialFlag tolerates the model emitting either a bare boolean or prose
// for the financial implications field.
type FinancialFlag string

func (f *FinancialFlag) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FinancialFlag(s)
		return nil
	}
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		if v {
			*f = "true"
		} else {
			*f = "false"
		}
		return nil
	}
	if string(b) == "null" {
		*f = ""
		return nil
	}
	return fmt.Errorf("financial implications: unsupported JSON value %s", string(b))
}

// ResponseRecommendation is the model's recommended reply posture. It is
// always present on a valid analysis; a missing or typeless recommendation
// is replaced with DefaultRecommendation.
type ResponseRecommendation struct {
	Type               string   `json:"type"`
	Reasoning          string   `json:"reasoning"`
	Confidence         string   `json:"confidence"`
	AlternativeOptions []string `json:"alternativeOptions"`
}

// DefaultRecommendation is the substitute used when the model omits or
// malforms recommendedResponseType.
func DefaultRecommendation() ResponseRecommendation {
	return ResponseRecommendation{
		Type:               string(ResponseCompliance),
		Reasoning:          "Default compliance response recommended due to incomplete analysis",
		Confidence:         "low",
		AlternativeOptions: []string{string(ResponseAcknowledgment), string(ResponseClarification)},
	}
}

type RiskAssessment struct {
	Level                string   `json:"level"`
	Factors              []string `json:"factors"`
	MitigationStrategies []string `json:"mitigationStrategies"`
}

// NoticeAnalysis is the structured analysis of a notice. Field names and
// JSON tags match the external service contract; Summary is the only field
// required for the analysis to be considered complete.
type NoticeAnalysis struct {
	Summary               string                 `json:"summary"`
	Urgency               string                 `json:"urgency,omitempty"`
	ComplianceRequired    string                 `json:"complianceRequired,omitempty"`
	Deadline              string                 `json:"deadline,omitempty"`
	KeyPoints             []string               `json:"keyPoints,omitempty"`
	RequiredActions       []string               `json:"requiredActions,omitempty"`
	DocumentsNeeded       []string               `json:"documentsNeeded,omitempty"`
	FinancialImplications FinancialFlag          `json:"financialImplications,omitempty"`
	NoticeType            string                 `json:"noticeType,omitempty"`
	IssuingAuthority      string                 `json:"issuingAuthority,omitempty"`
	LegalBasis            string                 `json:"legalBasis,omitempty"`
	Recommendation        ResponseRecommendation `json:"recommendedResponseType"`
	RiskAssessment        *RiskAssessment        `json:"riskAssessment,omitempty"`
	StrategicAdvice       string                 `json:"strategicAdvice,omitempty"`
}

// ResponseDraft is a generated reply letter. Regeneration overwrites the
// previous draft; no history is retained.
type ResponseDraft struct {
	ID           string       `json:"id"`
	ResponseType ResponseType `json:"response_type"`
	Body         string       `json:"body"`
	GeneratedAt  time.Time    `json:"generated_at"`
}

// ExportFilename names the downloadable draft artifact.
func (d *ResponseDraft) ExportFilename(now time.Time) string {
	return fmt.Sprintf("legal_response_%s_%s.txt", d.ResponseType, now.Format("2006-01-02"))
}

type UploadRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type UploadResponse struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	TextLength  int       `json:"text_length"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Message     string    `json:"message"`
}

// WorkflowSnapshot is a read-only view of the workflow for display.
type WorkflowSnapshot struct {
	Phase      string          `json:"phase"`
	Step       int             `json:"step"`
	Document   *Document       `json:"document,omitempty"`
	TextLength int             `json:"text_length,omitempty"`
	Analysis   *NoticeAnalysis `json:"analysis,omitempty"`
	Draft      *ResponseDraft  `json:"draft,omitempty"`
}

// ResponseTypeInfo describes a response type for selection UIs.
type ResponseTypeInfo struct {
	Type        ResponseType `json:"type"`
	Label       string       `json:"label"`
	Description string       `json:"description"`
	RiskLevel   string       `json:"risk_level"`
	Timeline    string       `json:"timeline"`
	WhenToUse   string       `json:"when_to_use"`
}
