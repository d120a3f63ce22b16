package ai

import (
	"context"
	"fmt"

	"vmake/models"
)

// Service generates a parts list and a feasibility analysis for a project.
type Service interface {
	GeneratePartsList(ctx context.Context, description string) (*models.PartsList, error)
	AnalyzeProject(ctx context.Context, sub models.ProjectSubmission) (*models.ProjectAnalysis, error)
}

// TextGenerator abstracts the underlying text-completion model so tests can
// substitute a fake.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// New returns the Service implementation for the given provider tag. Only
// "gemini" is implemented today; the tag exists so more providers can be added
// without touching callers.
func New(provider, apiKey, model string, cache *ResponseCache) (Service, error) {
	switch provider {
	case "gemini":
		client, err := NewGeminiClient(apiKey, model)
		if err != nil {
			return nil, err
		}
		return NewDefaultAIService(client, cache), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", provider)
	}
}
