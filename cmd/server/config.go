package main

import (
	"fmt"
	"log/slog"

	"github.com/careerbooster/cv-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
// Returns the loaded config and any loading error.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"max_upload_bytes", cfg.Server.MaxUploadBytes,
		"allowed_origins", len(cfg.CORS.AllowedOrigins))

	if cfg.Auth.JWTSecret != "" {
		slog.Debug("Auth configuration", "jwt_secret_present", true)
	}
	if cfg.LLM.GeminiAPIKey != "" {
		slog.Debug("LLM configuration", "gemini_api_key_present", true, "model", cfg.LLM.ModelName)
	}

	return cfg, nil
}
