package driving

import (
	"context"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// ChatService runs the request-augmentation pipeline
type ChatService interface {
	// Chat filters, retrieves, composes and completes a single question.
	// Failures are returned as *domain.ChatError.
	Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error)
}
