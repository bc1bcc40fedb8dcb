// Package main implements the entry point for the CareerBooster CV API server,
// which accepts CV uploads from authenticated users and has them reviewed
// by a Gemini model.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/careerbooster/cv-api/internal/platform/gemini"
)

// main is the entry point for the cv-api server.
func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the dependencies and serves until shutdown.
func run(ctx context.Context) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	processor, err := gemini.NewAnalyzer(ctx, logger, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize CV analyzer: %w", err)
	}
	logger.Info("CV analyzer initialized", "model", cfg.LLM.ModelName)

	app, err := newApplication(cfg, logger, processor)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// loadDotEnv populates the environment from path when the file exists.
// Variables already set in the environment win.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %s: %w", path, err)
}
