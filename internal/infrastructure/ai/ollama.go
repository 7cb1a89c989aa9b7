package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

const defaultOllamaBaseURL = "http://localhost:11434"
const defaultOllamaModel = "llama3"

// ollamaGenerator produces responses from a local Ollama server. Intended
// for development and offline demos.
type ollamaGenerator struct {
	api     *api.Client
	model   string
	timeout time.Duration
}

func newOllamaGenerator(cfg Config) (*ollamaGenerator, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	u, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid base url: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}

	return &ollamaGenerator{
		api:     api.NewClient(u, &http.Client{Timeout: cfg.Timeout}),
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate runs a non-streaming generation and returns the capped response.
func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (*ports.GenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	stream := false
	req := &api.GenerateRequest{
		Model:  g.model,
		Prompt: prompt,
		System: systemPrompt,
		Stream: &stream,
	}

	var sb strings.Builder
	err := g.api.Generate(ctx, req, func(r api.GenerateResponse) error {
		sb.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return finishResult(sb.String()), nil
}
