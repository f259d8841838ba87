package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

const conversationPrefix = "fincoach:conversation:"

// DefaultConversationTTL keeps an idle conversation for 30 days
const DefaultConversationTTL = 30 * 24 * time.Hour

// ConversationStore implements driven.ConversationStore using Redis.
// Every save refreshes the key's TTL, so only idle conversations expire.
type ConversationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewConversationStore creates a Redis-backed ConversationStore.
// A non-positive ttl uses DefaultConversationTTL.
func NewConversationStore(client *redis.Client, ttl time.Duration) *ConversationStore {
	if ttl <= 0 {
		ttl = DefaultConversationTTL
	}
	return &ConversationStore{client: client, ttl: ttl}
}

// Save stores the conversation as JSON
func (s *ConversationStore) Save(ctx context.Context, conv *domain.Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	if err := s.client.Set(ctx, conversationPrefix+conv.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation: %w", err)
	}
	return nil
}

// Get retrieves a conversation by ID
func (s *ConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	data, err := s.client.Get(ctx, conversationPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}
	return &conv, nil
}

// Delete removes a conversation
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, conversationPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

// Ping checks if Redis is reachable
func (s *ConversationStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
