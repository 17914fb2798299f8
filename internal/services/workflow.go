package services

import (
	"context"
	"errors"
	"time"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/analyzer"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/config"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/extractor"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/llm"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/responder"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/workflow"
)

type WorkflowService interface {
	UploadNotice(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error)
	AnalyzeNotice(ctx context.Context, userKey string) (*models.NoticeAnalysis, error)
	GenerateResponse(ctx context.Context, userKey, responseType string) (*models.ResponseDraft, error)
	State() *models.WorkflowSnapshot
	ExportDraft() (string, []byte, error)
	Reset()
	HasServerKey() bool
	ResponseTypeCatalog() []models.ResponseTypeInfo
}

type workflowService struct {
	store     *workflow.Store
	analyzer  analyzer.Analyzer
	responder responder.Responder
	cfg       *config.Config
	logger    *utils.Logger
}

// NewService wires the workflow around the given text generator. Tests
// pass a stub generator; production passes the Gemini-backed one.
func NewService(gen llm.TextGenerator, cfg *config.Config, logger *utils.Logger) WorkflowService {
	return &workflowService{
		store:     workflow.NewStore(),
		analyzer:  analyzer.New(gen, logger),
		responder: responder.New(gen, logger),
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *workflowService) UploadNotice(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	opts := extractor.Options{
		Progress: func(page, total int) {
			s.logger.Debug("Extracting text", "page", page, "total_pages", total, "filename", req.Filename)
		},
	}

	text, err := extractor.Extract(req.File, req.Filename, req.ContentType, opts)
	if err != nil {
		s.logger.Warn("Failed to extract text", "error", err, "filename", req.Filename, "content_type", req.ContentType)
		return nil, mapExtractionError(err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:          utils.GenerateID(),
		Filename:    req.Filename,
		FileSize:    int64(len(req.File)),
		ContentType: extractor.ResolveContentType(req.Filename, req.ContentType),
		UploadedAt:  now,
	}

	if err := s.store.SetDocument(doc, text); err != nil {
		return nil, mapWorkflowError(err)
	}

	s.logger.Info("Notice uploaded",
		"id", doc.ID,
		"filename", doc.Filename,
		"content_type", doc.ContentType,
		"text_length", len(text))

	return &models.UploadResponse{
		ID:          doc.ID,
		Filename:    doc.Filename,
		FileSize:    doc.FileSize,
		ContentType: doc.ContentType,
		TextLength:  len(text),
		UploadedAt:  now,
		Message:     "Notice uploaded successfully. Use /notice/analyze to analyze it.",
	}, nil
}

func (s *workflowService) AnalyzeNotice(ctx context.Context, userKey string) (*models.NoticeAnalysis, error) {
	// Resolve the credential before touching the workflow so a missing key
	// never causes a phase transition or a network call.
	key, err := apikey.Resolve(userKey, s.cfg.GeminiAPIKey)
	if err != nil {
		return nil, mapServiceError(err)
	}

	text, err := s.store.BeginAnalysis()
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	s.logger.Info("Starting notice analysis", "text_length", len(text))

	analysis, err := s.analyzer.Analyze(ctx, text, key)
	if err != nil {
		s.store.FailAnalysis()
		s.logger.Error("Failed to analyze notice", "error", err)
		return nil, mapServiceError(err)
	}

	if err := s.store.CompleteAnalysis(analysis); err != nil {
		return nil, mapWorkflowError(err)
	}

	return analysis, nil
}

func (s *workflowService) GenerateResponse(ctx context.Context, userKey, responseType string) (*models.ResponseDraft, error) {
	rt, err := models.ParseResponseType(responseType)
	if err != nil {
		return nil, utils.NewBadRequestError("Response type must be one of: acknowledgment, compliance, clarification, objection").WithCode("unknown_response_type")
	}

	key, err := apikey.Resolve(userKey, s.cfg.GeminiAPIKey)
	if err != nil {
		return nil, mapServiceError(err)
	}

	analysis, originalText, err := s.store.BeginGeneration()
	if err != nil {
		return nil, mapWorkflowError(err)
	}

	s.logger.Info("Starting response generation", "response_type", rt)

	draft, err := s.responder.Generate(ctx, analysis, originalText, rt, key)
	if err != nil {
		s.store.FailGeneration()
		s.logger.Error("Failed to generate response", "error", err, "response_type", rt)
		return nil, mapServiceError(err)
	}

	if err := s.store.CompleteGeneration(draft); err != nil {
		return nil, mapWorkflowError(err)
	}

	return draft, nil
}

func (s *workflowService) State() *models.WorkflowSnapshot {
	return s.store.Snapshot()
}

func (s *workflowService) ExportDraft() (string, []byte, error) {
	draft := s.store.Draft()
	if draft == nil {
		return "", nil, utils.NewNotFoundError("No response draft available. Generate a response first.")
	}
	return draft.ExportFilename(time.Now()), []byte(draft.Body), nil
}

func (s *workflowService) Reset() {
	s.store.Reset()
	s.logger.Info("Workflow reset")
}

func (s *workflowService) HasServerKey() bool {
	return apikey.HasConfiguredKey(s.cfg.GeminiAPIKey)
}

func (s *workflowService) ResponseTypeCatalog() []models.ResponseTypeInfo {
	return responder.TypeCatalog()
}

// mapExtractionError converts the extractor taxonomy into user-facing
// upload errors. No partial document is ever accepted.
func mapExtractionError(err error) *utils.AppError {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFileType):
		return utils.NewBadRequestError("Unsupported file type. Please upload a PDF or text file.").WithCode("unsupported_file_type").Wrap(err)
	case errors.Is(err, extractor.ErrCorruptDocument):
		return utils.NewBadRequestError("Invalid PDF file. Please ensure the file is not corrupted.").WithCode("corrupt_document").Wrap(err)
	case errors.Is(err, extractor.ErrPasswordProtected):
		return utils.NewBadRequestError("Password-protected PDFs are not supported. Please upload an unprotected PDF.").WithCode("password_protected").Wrap(err)
	case errors.Is(err, extractor.ErrNoExtractableText):
		return utils.NewBadRequestError("No text found in the document. The file might be image-based or encrypted.").WithCode("no_extractable_text").Wrap(err)
	case errors.Is(err, extractor.ErrDocumentTooShort):
		return utils.NewBadRequestError("The document appears to be too short or empty. Please ensure it contains meaningful text content.").WithCode("document_too_short").Wrap(err)
	default:
		return utils.NewBadRequestError(err.Error()).WithCode("extraction_failed")
	}
}

// mapServiceError converts credential and generative-service failures into
// user-facing errors.
func mapServiceError(err error) *utils.AppError {
	switch {
	case errors.Is(err, apikey.ErrMissing):
		return utils.NewUnauthorizedError("No API key available. Please provide your Gemini API key or configure GEMINI_API_KEY.").WithCode("missing_api_key").Wrap(err)
	case errors.Is(err, llm.ErrInvalidAPIKey):
		return utils.NewUnauthorizedError("Invalid API key. Please check your Gemini API key.").WithCode("invalid_api_key").Wrap(err)
	case errors.Is(err, llm.ErrQuotaExceeded):
		return utils.NewTooManyRequestsError("API quota exceeded. Please try again later or use your own API key.").WithCode("quota_exceeded").Wrap(err)
	case errors.Is(err, analyzer.ErrMalformedResponse), errors.Is(err, analyzer.ErrIncompleteResult):
		return utils.NewBadGatewayError("Failed to parse the AI analysis. Please try again.").WithCode("analysis_failed").Wrap(err)
	default:
		return utils.NewBadGatewayError(err.Error()).WithCode("service_failure")
	}
}

func mapWorkflowError(err error) *utils.AppError {
	if errors.Is(err, workflow.ErrInvalidTransition) {
		return utils.NewConflictError(err.Error()).WithCode("invalid_transition")
	}
	return utils.NewInternalError(err.Error())
}
