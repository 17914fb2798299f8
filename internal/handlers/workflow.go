package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/models"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/services"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

// APIKeyHeader carries an optional request-scoped Gemini key. It takes
// precedence over the server-configured key.
const APIKeyHeader = "X-Api-Key"

type WorkflowHandler struct {
	service     services.WorkflowService
	maxFileSize int64
	logger      *utils.Logger
}

func NewWorkflowHandler(service services.WorkflowService, maxFileSize int64, logger *utils.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// UploadNotice accepts a single multipart file upload. When a client sends
// several files only the first "file" part is used; the rest are ignored.
func (h *WorkflowHandler) UploadNotice(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError(h.sizeLimitMessage()))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			h.respondError(w, utils.NewBadRequestError(h.sizeLimitMessage()))
			return
		}
		h.respondError(w, utils.NewBadRequestError("Invalid form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, utils.NewBadRequestError("No file provided"))
		return
	}
	defer file.Close()

	h.logger.Info("File upload attempt",
		"filename", header.Filename,
		"reported_content_type", header.Header.Get("Content-Type"))

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		h.respondError(w, utils.NewInternalError("Failed to read file"))
		return
	}

	if int64(len(data)) > h.maxFileSize {
		h.respondError(w, utils.NewBadRequestError(h.sizeLimitMessage()))
		return
	}

	if len(data) == 0 {
		h.respondError(w, utils.NewBadRequestError("Uploaded file is empty"))
		return
	}

	req := &models.UploadRequest{
		File:        data,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}

	resp, err := h.service.UploadNotice(r.Context(), req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, resp)
}

func (h *WorkflowHandler) AnalyzeNotice(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.service.AnalyzeNotice(r.Context(), r.Header.Get(APIKeyHeader))
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, analysis)
}

type generateRequest struct {
	ResponseType string `json:"response_type"`
}

func (h *WorkflowHandler) GenerateResponse(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, utils.NewBadRequestError("Invalid JSON body"))
		return
	}

	draft, err := h.service.GenerateResponse(r.Context(), r.Header.Get(APIKeyHeader), req.ResponseType)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, draft)
}

func (h *WorkflowHandler) State(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.State())
}

// ExportDraft serves the current draft as a downloadable text file named
// after the response type and current date.
func (h *WorkflowHandler) ExportDraft(w http.ResponseWriter, r *http.Request) {
	filename, body, err := h.service.ExportDraft()
	if err != nil {
		h.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("Failed to write export body", "error", err)
	}
}

func (h *WorkflowHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.service.Reset()
	h.respondJSON(w, http.StatusOK, h.service.State())
}

func (h *WorkflowHandler) ResponseTypes(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.service.ResponseTypeCatalog())
}

// KeyStatus reports whether a server-side API key is configured. The key
// itself is never returned.
func (h *WorkflowHandler) KeyStatus(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]bool{
		"server_key_configured": h.service.HasServerKey(),
	})
}

func (h *WorkflowHandler) sizeLimitMessage() string {
	return fmt.Sprintf("File size exceeds %dMB limit", h.maxFileSize>>20)
}

func (h *WorkflowHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode JSON response", "error", err)
	}
}

func (h *WorkflowHandler) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "Internal server error"

	if appErr, ok := err.(*utils.AppError); ok {
		status = appErr.StatusCode
		code = appErr.Code
		message = appErr.Message
	}

	h.logger.Error("Request error", "status", status, "code", code, "error", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}
