package gemini

import (
	"fmt"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/careerbooster/cv-api/internal/config"
)

// validateConfig checks the settings the analyzer cannot run without.
func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", analysis.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", analysis.ErrInvalidConfig)
	}

	if cfg.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries cannot be negative, got %d", analysis.ErrInvalidConfig, cfg.MaxRetries)
	}

	if cfg.RetryDelaySeconds < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative, got %d", analysis.ErrInvalidConfig, cfg.RetryDelaySeconds)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: request timeout must be positive, got %d",
			analysis.ErrInvalidConfig, cfg.RequestTimeoutSeconds)
	}

	return nil
}
