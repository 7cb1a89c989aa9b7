package ports

import "context"

// GenerationResult is the AI response produced for one effective prompt.
// Response is capped at the generator's word limit; WordCount counts the
// words of the capped text.
type GenerationResult struct {
	Response  string `json:"response"`
	WordCount int    `json:"word_count"`
}

// ResponseGenerator turns a text prompt into an AI response. Any failure is
// surfaced to callers as a retryable upstream error: no turn state is
// consumed.
type ResponseGenerator interface {
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}
