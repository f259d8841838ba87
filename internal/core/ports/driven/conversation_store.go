package driven

import (
	"context"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// ConversationStore persists UI-owned conversation transcripts
type ConversationStore interface {
	// Save creates or replaces a conversation
	Save(ctx context.Context, conv *domain.Conversation) error

	// Get retrieves a conversation by ID, domain.ErrNotFound if missing
	Get(ctx context.Context, id string) (*domain.Conversation, error)

	// Delete removes a conversation. Deleting a missing one is not an error.
	Delete(ctx context.Context, id string) error
}
