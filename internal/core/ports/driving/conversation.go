package driving

import (
	"context"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// ConversationService manages saved transcripts for the UI
type ConversationService interface {
	// Create starts an empty conversation with a new ID
	Create(ctx context.Context) (*domain.Conversation, error)

	// Get returns a conversation by ID
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// Replace overwrites the stored messages
	Replace(ctx context.Context, id string, messages []domain.Message) (*domain.Conversation, error)

	// Append adds messages to the end of the transcript
	Append(ctx context.Context, id string, messages ...domain.Message) (*domain.Conversation, error)

	// Delete removes a conversation
	Delete(ctx context.Context, id string) error
}
