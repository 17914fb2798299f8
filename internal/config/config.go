package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/BerylCAtieno/legal-notice-assistant/internal/apikey"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Gemini
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	GeminiModel  string `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`

	// Upload limits
	MaxFileSize int64 `envconfig:"MAX_FILE_SIZE" default:"10485760"`
}

// Load reads configuration from the environment, with a best-effort .env
// file for local runs. A missing Gemini key is not an error: the service
// starts and each request may carry its own key.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// A checked-in .env template ships with the placeholder value; treat it
	// as unset so it never reaches the external service.
	if cfg.GeminiAPIKey == apikey.Placeholder {
		cfg.GeminiAPIKey = ""
	}

	return &cfg, nil
}
