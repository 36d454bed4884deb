// Package config loads and validates the application's configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP ingress settings.
type ServerConfig struct {
	Port string
}

// GitHubConfig holds the GitHub App identity and webhook settings.
// Token is an optional legacy personal access token; when set it takes
// precedence over App authentication.
type GitHubConfig struct {
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	WebhookSecret  string
	Token          string
}

// GeminiConfig holds the model-service settings.
type GeminiConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int32
	Temperature float32
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string
	Format string
}

// Config holds the application's configuration values.
type Config struct {
	Server     ServerConfig
	GitHub     GitHubConfig
	Gemini     GeminiConfig
	Log        LogConfig
	MaxWorkers int
}

// LoadConfig reads configuration from environment variables and an optional
// .env file, sets defaults, and validates required fields. Absence of any
// mandatory option is a startup-fatal error.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "text")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("GEMINI_MAX_TOKENS", 1024)
	viper.SetDefault("GEMINI_TEMPERATURE", 0.4)
	viper.SetDefault("MAX_WORKERS", 4)
	viper.SetDefault("GITHUB_PRIVATE_KEY_PATH", "keys/github-auto-review-bot.private-key.pem")

	// A missing .env file just means env-only configuration.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("failed to read config file", "error", err)
		}
	}

	if viper.GetInt64("GITHUB_APP_ID") == 0 {
		return nil, fmt.Errorf("GITHUB_APP_ID must be set")
	}
	if viper.GetInt64("GITHUB_INSTALLATION_ID") == 0 {
		return nil, fmt.Errorf("GITHUB_INSTALLATION_ID must be set")
	}
	if viper.GetString("GITHUB_WEBHOOK_SECRET") == "" {
		return nil, fmt.Errorf("GITHUB_WEBHOOK_SECRET must be set")
	}
	if viper.GetString("GEMINI_API_KEY") == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		GitHub: GitHubConfig{
			AppID:          viper.GetInt64("GITHUB_APP_ID"),
			InstallationID: viper.GetInt64("GITHUB_INSTALLATION_ID"),
			PrivateKeyPath: viper.GetString("GITHUB_PRIVATE_KEY_PATH"),
			WebhookSecret:  viper.GetString("GITHUB_WEBHOOK_SECRET"),
			Token:          viper.GetString("GITHUB_TOKEN"),
		},
		Gemini: GeminiConfig{
			APIKey:      viper.GetString("GEMINI_API_KEY"),
			Model:       viper.GetString("GEMINI_MODEL"),
			MaxTokens:   viper.GetInt32("GEMINI_MAX_TOKENS"),
			Temperature: float32(viper.GetFloat64("GEMINI_TEMPERATURE")),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		MaxWorkers: viper.GetInt("MAX_WORKERS"),
	}, nil
}
