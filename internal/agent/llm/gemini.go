package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// Gemini calls the Gemini API with an API key.
type Gemini struct {
	llm   llms.Model
	model string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key not configured")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("googleai.New: %w", err)
	}

	return &Gemini{llm: client, model: model}, nil
}

func (g *Gemini) Name() string {
	return ProviderGemini + "/" + g.model
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
}

func (g *Gemini) Close() error {
	return nil
}
