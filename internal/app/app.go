// Package app initializes and orchestrates the main components of the
// application: configuration, collaborator clients, the triage job, the
// dispatcher, and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/core"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/github"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/jobs"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/llm"
	"github.com/shweta-bavishi/github-auto-review-bot/internal/server"
)

// App holds the main application components.
type App struct {
	ctx        context.Context
	cfg        *config.Config
	server     *server.Server
	logger     *slog.Logger
	dispatcher core.JobDispatcher
}

// NewApp sets up the application with all its dependencies.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.Info("initializing auto-review bot",
		"model", cfg.Gemini.Model,
		"max_workers", cfg.MaxWorkers)

	ghClient, err := github.NewInstallationClient(ctx, cfg.GitHub, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	agent, err := llm.NewGeminiAgent(ctx, cfg.Gemini, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini agent: %w", err)
	}

	triageJob := jobs.NewTriageJob(
		ghClient,
		agent,
		github.NewLabelReconciler(ghClient, logger),
		github.NewStatusReporter(ghClient),
		jobs.NewReviewerRouter(nil),
		logger,
	)
	dispatcher := jobs.NewDispatcher(triageJob, cfg.MaxWorkers, logger)
	httpServer := server.NewServer(ctx, cfg, dispatcher, logger)

	logger.Info("auto-review bot initialized successfully")
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		server:     httpServer,
		logger:     logger,
		dispatcher: dispatcher,
	}, nil
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting auto-review bot", "server_port", a.cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *App) Stop() error {
	a.logger.Info("stopping auto-review bot")
	return a.server.Stop()
}
