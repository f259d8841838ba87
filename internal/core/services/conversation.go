package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
	"github.com/custodia-labs/fincoach/internal/core/ports/driving"
)

// Ensure conversationService implements ConversationService
var _ driving.ConversationService = (*conversationService)(nil)

const (
	conversationLockTTL   = 10 * time.Second
	conversationLockRetry = 20 * time.Millisecond
	conversationLockTries = 25
)

// conversationService implements the ConversationService interface
type conversationService struct {
	store driven.ConversationStore
	lock  driven.DistributedLock
	now   func() time.Time
}

// NewConversationService creates a new ConversationService.
// lock serialises read-modify-write updates; nil disables locking.
func NewConversationService(store driven.ConversationStore, lock driven.DistributedLock) driving.ConversationService {
	return &conversationService{
		store: store,
		lock:  lock,
		now:   time.Now,
	}
}

// Create starts an empty conversation
func (s *conversationService) Create(ctx context.Context) (*domain.Conversation, error) {
	now := s.now()
	conv := &domain.Conversation{
		ID:        uuid.NewString(),
		Messages:  []domain.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}
	return conv, nil
}

// Get retrieves a conversation by ID
func (s *conversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	if err := validateConversationID(id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// Replace overwrites the stored messages of an existing conversation
func (s *conversationService) Replace(ctx context.Context, id string, messages []domain.Message) (*domain.Conversation, error) {
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(conv *domain.Conversation) {
		conv.Messages = append([]domain.Message{}, messages...)
	})
}

// Append adds messages to the end of an existing conversation
func (s *conversationService) Append(ctx context.Context, id string, messages ...domain.Message) (*domain.Conversation, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: no messages", domain.ErrInvalidInput)
	}
	if err := validateMessages(messages); err != nil {
		return nil, err
	}

	return s.update(ctx, id, func(conv *domain.Conversation) {
		conv.Messages = append(conv.Messages, messages...)
	})
}

// Delete removes a conversation
func (s *conversationService) Delete(ctx context.Context, id string) error {
	if err := validateConversationID(id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

// update loads, modifies and saves a conversation while holding its lock
func (s *conversationService) update(ctx context.Context, id string, modify func(*domain.Conversation)) (*domain.Conversation, error) {
	if err := validateConversationID(id); err != nil {
		return nil, err
	}

	release, err := s.acquire(ctx, id)
	if err != nil {
		return nil, err
	}
	defer release()

	conv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	modify(conv)
	conv.UpdatedAt = s.now()

	if err := s.store.Save(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to save conversation: %w", err)
	}
	return conv, nil
}

// acquire takes the conversation lock, retrying briefly while another
// writer holds it
func (s *conversationService) acquire(ctx context.Context, id string) (func(), error) {
	if s.lock == nil {
		return func() {}, nil
	}

	name := "conversation:" + id
	for attempt := 1; ; attempt++ {
		ok, err := s.lock.Acquire(ctx, name, conversationLockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to lock conversation: %w", err)
		}
		if ok {
			break
		}
		if attempt >= conversationLockTries {
			return nil, fmt.Errorf("%w: conversation %s is being updated", domain.ErrConflict, id)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(conversationLockRetry):
		}
	}

	return func() {
		_ = s.lock.Release(context.WithoutCancel(ctx), name)
	}, nil
}

func validateConversationID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed conversation id", domain.ErrInvalidInput)
	}
	return nil
}

func validateMessages(messages []domain.Message) error {
	for i, m := range messages {
		if strings.TrimSpace(m.Speaker) == "" {
			return fmt.Errorf("%w: message %d has no speaker", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
