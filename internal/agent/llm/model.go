// Package llm holds the language-model backends the answer relay talks to.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feichai0017/document-qa/pkg/logger"
)

// Model generates a textual response for a prompt.
type Model interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

// Config selects and configures a backend.
type Config struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	VertexProject string
	VertexRegion  string
	VertexModel   string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
}

// New builds the backend named by cfg.Provider.
func New(ctx context.Context, cfg Config, log logger.Logger) (Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = ProviderGemini
	}

	log.Info("Initializing language model",
		logger.String("provider", provider),
	)

	switch provider {
	case ProviderGemini:
		m, err := NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		return m, nil
	case ProviderVertex:
		m, err := NewVertex(ctx, cfg.VertexProject, cfg.VertexRegion, cfg.VertexModel)
		if err != nil {
			return nil, err
		}
		return m, nil
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai API key not configured")
		}
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
