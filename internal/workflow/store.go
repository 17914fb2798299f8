// Package workflow owns the single source of truth for the notice
// workflow: the uploaded document, its extracted text, the analysis and
// the current draft. All mutation happens through transition methods so
// the phase progression stays auditable.
package workflow

import (
	"errors"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
)

type Phase string

const (
	PhaseNoDocument    Phase = "no_document"
	PhaseDocumentReady Phase = "document_ready"
	PhaseAnalyzing     Phase = "analyzing"
	PhaseAnalyzed      Phase = "analyzed"
	PhaseGenerating    Phase = "generating"
	PhaseComplete      Phase = "complete"
)

// ErrInvalidTransition is returned when a transition method is called in
// a phase where it is not allowed. It leaves the store untouched.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// Store is a single-workflow state container. It is safe for concurrent
// use; at most one analysis and one generation can be in flight because
// the begin methods reject re-entry structurally.
type Store struct {
	mu sync.Mutex

	phase     Phase
	prevPhase Phase

	doc      *models.Document
	text     string
	analysis *models.NoticeAnalysis
	draft    *models.ResponseDraft
}

func NewStore() *Store {
	return &Store{phase: PhaseNoDocument}
}

// SetDocument records a successfully extracted upload. Any previous
// analysis and draft are cleared atomically with the document swap. Valid
// from every phase except while a call is in flight.
func (s *Store) SetDocument(doc *models.Document, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseAnalyzing || s.phase == PhaseGenerating {
		return fmt.Errorf("%w: cannot replace the document while %s", ErrInvalidTransition, s.phase)
	}

	s.doc = doc
	s.text = text
	s.analysis = nil
	s.draft = nil
	s.phase = PhaseDocumentReady
	return nil
}

// BeginAnalysis moves DocumentReady → Analyzing and hands back the
// extracted text for the caller to analyze.
func (s *Store) BeginAnalysis() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseDocumentReady {
		return "", fmt.Errorf("%w: analysis requires an uploaded document (phase %s)", ErrInvalidTransition, s.phase)
	}

	s.prevPhase = s.phase
	s.phase = PhaseAnalyzing
	return s.text, nil
}

// CompleteAnalysis moves Analyzing → Analyzed.
func (s *Store) CompleteAnalysis(analysis *models.NoticeAnalysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAnalyzing {
		return fmt.Errorf("%w: no analysis in flight (phase %s)", ErrInvalidTransition, s.phase)
	}

	s.analysis = analysis
	s.phase = PhaseAnalyzed
	return nil
}

// FailAnalysis rolls the phase back to its pre-analysis value. The error
// itself is an ephemeral side channel handled by the caller, never stored.
func (s *Store) FailAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseAnalyzing {
		s.phase = s.prevPhase
	}
}

// BeginGeneration moves Analyzed or Complete → Generating and hands back
// the analysis and original text for prompt construction.
func (s *Store) BeginGeneration() (*models.NoticeAnalysis, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseAnalyzed && s.phase != PhaseComplete {
		return nil, "", fmt.Errorf("%w: generation requires a completed analysis (phase %s)", ErrInvalidTransition, s.phase)
	}

	s.prevPhase = s.phase
	s.phase = PhaseGenerating
	return s.analysis, s.text, nil
}

// CompleteGeneration moves Generating → Complete, overwriting any
// previous draft.
func (s *Store) CompleteGeneration(draft *models.ResponseDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseGenerating {
		return fmt.Errorf("%w: no generation in flight (phase %s)", ErrInvalidTransition, s.phase)
	}

	s.draft = draft
	s.phase = PhaseComplete
	return nil
}

// FailGeneration rolls the phase back to its pre-generation value, which
// preserves an existing draft when a regeneration attempt fails.
func (s *Store) FailGeneration() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseGenerating {
		s.phase = s.prevPhase
	}
}

// Reset discards everything and returns to NoDocument. Valid from any
// phase.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseNoDocument
	s.prevPhase = PhaseNoDocument
	s.doc = nil
	s.text = ""
	s.analysis = nil
	s.draft = nil
}

// Phase returns the current workflow phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Step projects the phase onto the three-step progress indicator:
// 1 = upload, 2 = analyze, 3 = respond.
func (s *Store) Step() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stepFor(s.phase)
}

func stepFor(phase Phase) int {
	switch phase {
	case PhaseNoDocument:
		return 1
	case PhaseDocumentReady:
		return 2
	default:
		return 3
	}
}

// Draft returns the current draft, or nil if none has been generated.
func (s *Store) Draft() *models.ResponseDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Snapshot returns a read-only view of the workflow for display.
func (s *Store) Snapshot() *models.WorkflowSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &models.WorkflowSnapshot{
		Phase:      string(s.phase),
		Step:       stepFor(s.phase),
		Document:   s.doc,
		TextLength: len(s.text),
		Analysis:   s.analysis,
		Draft:      s.draft,
	}
}
