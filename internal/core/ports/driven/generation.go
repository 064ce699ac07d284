package driven

import (
	"context"
)

// GenerationService produces an answer string from a prompt.
// Calls may take seconds to minutes; the engine treats them as a single
// blocking attempt and never retries. Timeout and cancellation are the
// caller's responsibility via ctx.
type GenerationService interface {
	// Generate produces an answer for the prompt
	Generate(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the generation service
	Close() error
}
