// Package memory provides process-local fallbacks used when neither
// Redis nor PostgreSQL is configured.
package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ConversationStore = (*ConversationStore)(nil)

// ConversationStore keeps conversations in a map. Data is lost on restart.
type ConversationStore struct {
	mu            sync.RWMutex
	conversations map[string]domain.Conversation
}

// NewConversationStore creates an empty in-memory ConversationStore
func NewConversationStore() *ConversationStore {
	return &ConversationStore{conversations: make(map[string]domain.Conversation)}
}

// Save stores a copy of conv
func (s *ConversationStore) Save(ctx context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conv.ID] = cloneConversation(*conv)
	return nil
}

// Get returns a copy of the stored conversation
func (s *ConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := cloneConversation(conv)
	return &out, nil
}

// Delete removes a conversation
func (s *ConversationStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	return nil
}

func cloneConversation(c domain.Conversation) domain.Conversation {
	c.Messages = append([]domain.Message{}, c.Messages...)
	return c
}
