package driven

import (
	"context"
)

// CompletionService sends a composed prompt to a hosted language model
type CompletionService interface {
	// Complete issues exactly one completion request and returns the
	// trimmed text of the first choice. Failures wrap domain.ErrUpstream.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the model name being used
	Model() string

	// Close releases resources held by the client
	Close() error
}
