package router

import (
	"net/http"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/handlers"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/middleware"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/services"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(svc services.WorkflowService, maxFileSize int64, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	wfHandler := handlers.NewWorkflowHandler(svc, maxFileSize, logger)

	// Routes
	api := r.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods(http.MethodGet)

	// Workflow endpoints
	api.HandleFunc("/notice/upload", wfHandler.UploadNotice).Methods(http.MethodPost)
	api.HandleFunc("/notice/analyze", wfHandler.AnalyzeNotice).Methods(http.MethodPost)
	api.HandleFunc("/notice/response", wfHandler.GenerateResponse).Methods(http.MethodPost)
	api.HandleFunc("/notice/response/export", wfHandler.ExportDraft).Methods(http.MethodGet)
	api.HandleFunc("/notice/state", wfHandler.State).Methods(http.MethodGet)
	api.HandleFunc("/notice/reset", wfHandler.Reset).Methods(http.MethodPost)

	// Reference data
	api.HandleFunc("/response-types", wfHandler.ResponseTypes).Methods(http.MethodGet)
	api.HandleFunc("/keystatus", wfHandler.KeyStatus).Methods(http.MethodGet)

	return r
}
