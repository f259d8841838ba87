package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven/mocks"
)

func newTestChatService(completion *mocks.MockCompletionService) *chatService {
	return NewChatService(ChatServiceConfig{
		Filter:     NewTopicFilter(nil),
		Retriever:  NewRetriever(mocks.NewMockDocumentStore(testDocuments()...)),
		Composer:   NewPromptComposer(""),
		Completion: completion,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*chatService)
}

func TestChatService_Success(t *testing.T) {
	completion := mocks.NewMockCompletionService("  Track every expense for a month.  ")
	svc := newTestChatService(completion)

	result, err := svc.Chat(context.Background(), domain.ChatRequest{
		Question: "How do I budget my salary?",
	})

	require.NoError(t, err)
	assert.Equal(t, "Track every expense for a month.", result.Answer)
	assert.Equal(t, 1, completion.Calls())
	assert.Contains(t, completion.LastPrompt(), "Documents:\nBudgets track income against expenses.")
	assert.Contains(t, completion.LastPrompt(), "New question: How do I budget my salary?")
}

func TestChatService_HistoryIsPassedToPrompt(t *testing.T) {
	completion := mocks.NewMockCompletionService("Sure.")
	svc := newTestChatService(completion)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{
		Question: "tell me more",
		History: []domain.Message{
			{Speaker: domain.SpeakerUser, Text: "What is riba?"},
			{Speaker: domain.SpeakerAssistant, Text: "Interest."},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, completion.LastPrompt(), "You: What is riba?\nFinCoach: Interest.\n")
	assert.NotContains(t, completion.LastPrompt(), "Documents:")
}

func TestChatService_ScopeViolation(t *testing.T) {
	completion := mocks.NewMockCompletionService("should not be used")
	svc := newTestChatService(completion)

	result, err := svc.Chat(context.Background(), domain.ChatRequest{
		Question: "What's the weather today?",
	})

	assert.Nil(t, result)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrScopeViolation)

	var chatErr *domain.ChatError
	require.ErrorAs(t, err, &chatErr)
	assert.Equal(t, domain.ErrorKindScopeViolation, chatErr.Kind)
	assert.Equal(t, domain.ScopeViolationMessage, chatErr.Message)
	assert.Equal(t, 0, completion.Calls())
}

func TestChatService_EmptyQuestionRejected(t *testing.T) {
	completion := mocks.NewMockCompletionService("unused")
	svc := newTestChatService(completion)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "   "})

	assert.ErrorIs(t, err, domain.ErrScopeViolation)
	assert.Equal(t, 0, completion.Calls())
}

func TestChatService_UpstreamFailure(t *testing.T) {
	completion := mocks.NewMockCompletionService("")
	completion.FailWith(errors.New("connection reset"))
	svc := newTestChatService(completion)

	result, err := svc.Chat(context.Background(), domain.ChatRequest{
		Question: "Explain islamic banking",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	var chatErr *domain.ChatError
	require.ErrorAs(t, err, &chatErr)
	assert.Equal(t, domain.ErrorKindUpstream, chatErr.Kind)
	assert.Equal(t, domain.UpstreamErrorMessage, chatErr.Message)
	assert.Equal(t, 1, completion.Calls())
}

func TestChatService_BlankAnswerIsUpstreamFailure(t *testing.T) {
	completion := mocks.NewMockCompletionService("   ")
	svc := newTestChatService(completion)

	_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "hello"})

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestChatService_Defaults(t *testing.T) {
	completion := mocks.NewMockCompletionService("ok")
	svc := NewChatService(ChatServiceConfig{Completion: completion})

	result, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "thanks"})

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Answer)
	assert.NotContains(t, completion.LastPrompt(), "Documents:")
}

func TestChatService_ConcurrentRequests(t *testing.T) {
	completion := mocks.NewMockCompletionService("answer")
	svc := newTestChatService(completion)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Chat(context.Background(), domain.ChatRequest{Question: "saving tips"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, completion.Calls())
}
