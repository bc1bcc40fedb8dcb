package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/careerbooster/cv-api/internal/analysis"
	"github.com/careerbooster/cv-api/internal/config"
	"github.com/careerbooster/cv-api/internal/platform/metrics"
	"github.com/careerbooster/cv-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger  *slog.Logger
	metrics *metrics.UploadMetrics

	// Service interfaces
	jwtService auth.JWTService
	processor  analysis.Processor
}

// newApplication creates a new application instance with all dependencies initialized.
// The processor is built by the caller so tests can substitute their own.
func newApplication(cfg *config.Config, logger *slog.Logger, processor analysis.Processor) (*application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if processor == nil {
		return nil, errors.New("processor cannot be nil")
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app := &application{
		config:     cfg,
		logger:     logger,
		metrics:    metrics.New(),
		jwtService: jwtService,
		processor:  processor,
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed")
}
