package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/config"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/workflow"
)

type stubGenerator struct {
	calls  int
	output string
	err    error
}

func (s *stubGenerator) GenerateText(ctx context.Context, apiKey, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.output, nil
}

func newTestService(gen *stubGenerator, serverKey string) WorkflowService {
	cfg := &config.Config{
		GeminiAPIKey: serverKey,
		GeminiModel:  "gemini-1.5-flash",
		MaxFileSize:  10 << 20,
	}
	return NewService(gen, cfg, utils.NewLogger("error"))
}

// sixtyCharNotice is exactly 60 characters, just over the 50-character
// extraction minimum.
const sixtyCharNotice = "Notice 4217: respond to the city planning office in 14 days."

func uploadNotice(t *testing.T, svc WorkflowService, text string) *models.UploadResponse {
	t.Helper()
	resp, err := svc.UploadNotice(context.Background(), &models.UploadRequest{
		File:        []byte(text),
		Filename:    "notice.txt",
		ContentType: "text/plain",
	})
	if err != nil {
		t.Fatalf("UploadNotice: %v", err)
	}
	return resp
}

func TestUploadMovesToDocumentReady(t *testing.T) {
	if len(sixtyCharNotice) != 60 {
		t.Fatalf("fixture is %d chars, want 60", len(sixtyCharNotice))
	}

	svc := newTestService(&stubGenerator{}, "")
	resp := uploadNotice(t, svc, sixtyCharNotice)

	if resp.TextLength != 60 {
		t.Errorf("text length = %d, want 60", resp.TextLength)
	}

	state := svc.State()
	if state.Phase != string(workflow.PhaseDocumentReady) {
		t.Errorf("phase = %q, want document_ready", state.Phase)
	}
	if state.Step != 2 {
		t.Errorf("step = %d, want 2", state.Step)
	}
}

func TestUploadRejectsShortDocument(t *testing.T) {
	svc := newTestService(&stubGenerator{}, "")

	_, err := svc.UploadNotice(context.Background(), &models.UploadRequest{
		File:        []byte("short"),
		Filename:    "notice.txt",
		ContentType: "text/plain",
	})

	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "document_too_short" || appErr.StatusCode != http.StatusBadRequest {
		t.Errorf("got code %q status %d", appErr.Code, appErr.StatusCode)
	}

	if svc.State().Phase != string(workflow.PhaseNoDocument) {
		t.Error("failed upload changed the workflow phase")
	}
}

func TestAnalyzeDefaultsRecommendation(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)

	analysis, err := svc.AnalyzeNotice(context.Background(), "")
	if err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}

	if analysis.Summary != "X" {
		t.Errorf("summary = %q", analysis.Summary)
	}
	want := models.DefaultRecommendation()
	if analysis.Recommendation.Type != want.Type || analysis.Recommendation.Confidence != want.Confidence {
		t.Errorf("recommendation = %+v, want default", analysis.Recommendation)
	}

	state := svc.State()
	if state.Phase != string(workflow.PhaseAnalyzed) || state.Step != 3 {
		t.Errorf("phase %q step %d after analysis", state.Phase, state.Step)
	}
}

func TestAnalyzeWithoutDocument(t *testing.T) {
	svc := newTestService(&stubGenerator{}, "server-key")

	_, err := svc.AnalyzeNotice(context.Background(), "")
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 AppError, got %v", err)
	}
}

func TestAnalyzeFailureRollsBack(t *testing.T) {
	gen := &stubGenerator{output: "not json at all"}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)

	_, err := svc.AnalyzeNotice(context.Background(), "")
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != "analysis_failed" {
		t.Fatalf("expected analysis_failed, got %v", err)
	}

	if svc.State().Phase != string(workflow.PhaseDocumentReady) {
		t.Errorf("phase after failed analysis = %q, want document_ready", svc.State().Phase)
	}
}

func TestGenerateWithoutAnyKey(t *testing.T) {
	// No server key; the analysis succeeds with a request-scoped key,
	// then generation is attempted without any key at all.
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "")
	uploadNotice(t, svc, sixtyCharNotice)
	if _, err := svc.AnalyzeNotice(context.Background(), "user-key"); err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}
	callsBefore := gen.calls

	_, err := svc.GenerateResponse(context.Background(), "", "objection")
	appErr, ok := err.(*utils.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != "missing_api_key" || appErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("got code %q status %d", appErr.Code, appErr.StatusCode)
	}
	if gen.calls != callsBefore {
		t.Errorf("missing key still made %d service calls", gen.calls-callsBefore)
	}
	if svc.State().Phase != string(workflow.PhaseAnalyzed) {
		t.Errorf("missing key changed phase to %q", svc.State().Phase)
	}
}

func TestGenerateAndExport(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)
	if _, err := svc.AnalyzeNotice(context.Background(), ""); err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}

	gen.output = "Dear Planning Office,\n\nWe object to the notice."
	draft, err := svc.GenerateResponse(context.Background(), "", "objection")
	if err != nil {
		t.Fatalf("GenerateResponse: %v", err)
	}
	if draft.ResponseType != models.ResponseObjection {
		t.Errorf("draft type = %q", draft.ResponseType)
	}

	state := svc.State()
	if state.Phase != string(workflow.PhaseComplete) {
		t.Errorf("phase = %q, want complete", state.Phase)
	}

	filename, body, err := svc.ExportDraft()
	if err != nil {
		t.Fatalf("ExportDraft: %v", err)
	}
	wantName := "legal_response_objection_" + time.Now().Format("2006-01-02") + ".txt"
	if filename != wantName {
		t.Errorf("export filename = %q, want %q", filename, wantName)
	}
	if string(body) != draft.Body {
		t.Errorf("export body mismatch")
	}
}

func TestGenerateUnknownResponseType(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)
	if _, err := svc.AnalyzeNotice(context.Background(), ""); err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}

	_, err := svc.GenerateResponse(context.Background(), "", "escalation")
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.Code != "unknown_response_type" {
		t.Errorf("expected unknown_response_type, got %v", err)
	}
}

func TestExportWithoutDraft(t *testing.T) {
	svc := newTestService(&stubGenerator{}, "")

	_, _, err := svc.ExportDraft()
	appErr, ok := err.(*utils.AppError)
	if !ok || appErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 AppError, got %v", err)
	}
}

func TestNewUploadClearsAnalysis(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)
	if _, err := svc.AnalyzeNotice(context.Background(), ""); err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}

	uploadNotice(t, svc, strings.Repeat("Another notice with plenty of text to analyze. ", 3))

	state := svc.State()
	if state.Analysis != nil {
		t.Error("new upload did not clear the analysis")
	}
	if state.Phase != string(workflow.PhaseDocumentReady) {
		t.Errorf("phase = %q, want document_ready", state.Phase)
	}
}

func TestResetFromAnyPoint(t *testing.T) {
	gen := &stubGenerator{output: `{"summary":"X"}`}
	svc := newTestService(gen, "server-key")
	uploadNotice(t, svc, sixtyCharNotice)
	if _, err := svc.AnalyzeNotice(context.Background(), ""); err != nil {
		t.Fatalf("AnalyzeNotice: %v", err)
	}

	svc.Reset()

	state := svc.State()
	if state.Phase != string(workflow.PhaseNoDocument) || state.Step != 1 {
		t.Errorf("after reset: phase %q step %d", state.Phase, state.Step)
	}
	if state.Document != nil || state.Analysis != nil || state.Draft != nil {
		t.Errorf("reset left state behind: %+v", state)
	}
}

func TestHasServerKey(t *testing.T) {
	if newTestService(&stubGenerator{}, "").HasServerKey() {
		t.Error("keyless service reports a server key")
	}
	if !newTestService(&stubGenerator{}, "server-key").HasServerKey() {
		t.Error("keyed service reports no server key")
	}
}
