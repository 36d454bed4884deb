// Package llm contains the model-collaborator boundary: the agent interface,
// its Gemini implementation, prompt construction, and response parsing.
package llm

import (
	"context"
)

// Agent defines the contract for the language-model collaborator. The
// implementation carries its own output-token bound and temperature.
//
//go:generate mockgen -destination=../../mocks/mock_agent.go -package=mocks . Agent
type Agent interface {
	// Generate submits a prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string) (string, error)
}
