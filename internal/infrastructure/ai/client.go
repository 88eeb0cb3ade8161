// Package ai builds the language model client used for résumé scoring.
package ai

import (
	"context"
	"fmt"

	"jobboard/internal/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// NewModel returns nil when no API key is configured; callers treat a nil
// model as "AI unavailable".
func NewModel(ctx context.Context, cfg *config.AIConfig) (llms.Model, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return llm, nil
}
