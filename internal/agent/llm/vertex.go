package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

const DefaultVertexModel = "gemini-2.5-flash"

// Vertex calls Gemini through Vertex AI using application default credentials.
type Vertex struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

func NewVertex(ctx context.Context, projectID, region, model string) (*Vertex, error) {
	if projectID == "" || region == "" {
		return nil, errors.New("vertex: projectID and region cannot be empty")
	}
	if model == "" {
		model = DefaultVertexModel
	}

	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	return &Vertex{
		client: client,
		model:  client.GenerativeModel(model),
		name:   model,
	}, nil
}

func (v *Vertex) Name() string {
	return ProviderVertex + "/" + v.name
}

func (v *Vertex) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := v.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func (v *Vertex) Close() error {
	if v.client != nil {
		return v.client.Close()
	}
	return nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("vertex: empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}
