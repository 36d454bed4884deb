package llm

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/shweta-bavishi/github-auto-review-bot/internal/config"
)

// GeminiAgent implements Agent on the Google Gemini API.
type GeminiAgent struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	logger      *slog.Logger
}

// NewGeminiAgent creates a Gemini-backed agent from the model configuration.
func NewGeminiAgent(ctx context.Context, cfg config.GeminiConfig, logger *slog.Logger) (*GeminiAgent, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiAgent{
		client:      client,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

// Generate submits the prompt with the configured temperature and output-token
// bound and returns the first candidate's text.
func (a *GeminiAgent) Generate(ctx context.Context, prompt string) (string, error) {
	temperature := a.temperature
	result, err := a.client.Models.GenerateContent(ctx,
		a.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			Temperature:     &temperature,
			MaxOutputTokens: a.maxTokens,
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	var content string
	if len(result.Candidates) > 0 {
		candidate := result.Candidates[0]
		if candidate.Content != nil && len(candidate.Content.Parts) > 0 {
			content = candidate.Content.Parts[0].Text
		}
	}
	if content == "" {
		return "", fmt.Errorf("gemini returned no text candidates")
	}

	a.logger.Debug("gemini response received", "model", a.model, "chars", len(content))
	return content, nil
}
