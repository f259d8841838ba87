package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
	"github.com/custodia-labs/fincoach/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// ChatServiceConfig holds the collaborators of the chat pipeline
type ChatServiceConfig struct {
	Filter     *TopicFilter
	Retriever  *Retriever
	Composer   *PromptComposer
	Completion driven.CompletionService
	Logger     *slog.Logger
}

// chatService sequences filter, retrieval, composition and completion.
// It holds no per-request state and is safe for concurrent use.
type chatService struct {
	filter     *TopicFilter
	retriever  *Retriever
	composer   *PromptComposer
	completion driven.CompletionService
	logger     *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(cfg ChatServiceConfig) driving.ChatService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	filter := cfg.Filter
	if filter == nil {
		filter = NewTopicFilter(nil)
	}

	composer := cfg.Composer
	if composer == nil {
		composer = NewPromptComposer("")
	}

	return &chatService{
		filter:     filter,
		retriever:  cfg.Retriever,
		composer:   composer,
		completion: cfg.Completion,
		logger:     logger,
	}
}

// Chat runs one pipeline pass for req
func (s *chatService) Chat(ctx context.Context, req domain.ChatRequest) (*domain.ChatResult, error) {
	if !s.filter.IsInScope(req.Question) {
		s.logger.Debug("question rejected by topic filter", "question_len", len(req.Question))
		return nil, domain.NewScopeViolation()
	}

	var docs []string
	if s.retriever != nil {
		docs = s.retriever.Retrieve(req.Question)
	}

	prompt := s.composer.Compose(req.History, docs, req.Question)

	answer, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		chatErr := domain.NewUpstreamError(err)
		s.logger.Error("completion failed",
			"model", s.completion.Model(),
			"documents", len(docs),
			"history", len(req.History),
			"error", err)
		return nil, chatErr
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		s.logger.Error("completion returned no text", "model", s.completion.Model())
		return nil, domain.NewUpstreamError(domain.ErrEmptyCompletion)
	}

	s.logger.Debug("chat completed",
		"model", s.completion.Model(),
		"documents", len(docs),
		"history", len(req.History))

	return &domain.ChatResult{Answer: answer}, nil
}
