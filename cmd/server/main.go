package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/config"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/llm"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/router"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/services"
	"github.com/BerylCAtieno/legal-notice-assistant/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	if !apikey.HasConfiguredKey(cfg.GeminiAPIKey) {
		logger.Warn("No server-side Gemini API key configured; requests must supply their own key")
	}

	// Initialize workflow service
	generator := llm.NewGeminiGenerator(cfg.GeminiModel, logger)
	svc := services.NewService(generator, cfg, logger)

	// Setup HTTP router
	handler := router.NewRouter(svc, cfg.MaxFileSize, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "model", cfg.GeminiModel)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
