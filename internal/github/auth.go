package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
)

// NewInstallationClient creates a client authenticated as the configured GitHub
// App installation. The underlying transport mints and refreshes scoped
// installation tokens transparently. When a legacy personal access token is
// configured it takes precedence over App authentication.
func NewInstallationClient(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (Client, error) {
	if cfg.Token != "" {
		logger.Info("using legacy personal access token for GitHub authentication")
		return NewPATClient(ctx, cfg.Token, logger), nil
	}

	logger.Info("creating GitHub App installation client",
		"app_id", cfg.AppID,
		"installation_id", cfg.InstallationID)

	transport, err := ghinstallation.NewKeyFromFile(http.DefaultTransport,
		cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport from %s: %w", cfg.PrivateKeyPath, err)
	}

	client := github.NewClient(&http.Client{Transport: transport})
	return NewClient(client, logger), nil
}
