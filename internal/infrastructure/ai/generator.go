// Package ai provides the response generator backends. Both backends share
// the same contract: a bounded-timeout call producing a response capped at
// maxResponseWords words.
package ai

import (
	"fmt"
	"strings"
	"time"

	"github.com/ratetask/rating-platform/internal/core/ports"
)

// maxResponseWords caps the AI response; anything longer is truncated with a
// trailing ellipsis.
const maxResponseWords = 500

const systemPrompt = "You are a helpful AI assistant. Provide detailed, accurate, and useful responses. Keep your response under 500 words."

const defaultGenerateTimeout = 30 * time.Second

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// Config selects and tunes a generator backend.
type Config struct {
	Provider string        // "openai" or "ollama"
	Model    string        // model name, backend-specific
	APIKey   string        // openai only
	BaseURL  string        // ollama server, or an openai-compatible endpoint override
	Timeout  time.Duration // per-call timeout, defaulted when zero
}

// New builds the generator backend named by cfg.Provider.
func New(cfg Config) (ports.ResponseGenerator, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGenerateTimeout
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAIGenerator(cfg)
	case ProviderOllama:
		return newOllamaGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

// capResponse enforces the word cap: text over the limit is cut at
// maxResponseWords words and suffixed with an ellipsis. The returned count
// is the capped word count.
func capResponse(text string) (string, int) {
	words := strings.Fields(text)
	if len(words) <= maxResponseWords {
		return text, len(words)
	}
	return strings.Join(words[:maxResponseWords], " ") + "...", maxResponseWords
}

// emptyFallback is returned when the provider yields no content at all.
const emptyFallback = "I apologize, but I couldn't generate a response at this time."

func finishResult(text string) *ports.GenerationResult {
	if strings.TrimSpace(text) == "" {
		text = emptyFallback
	}
	capped, count := capResponse(text)
	return &ports.GenerationResult{Response: capped, WordCount: count}
}
