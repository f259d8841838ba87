package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// MockCompletionService is a scriptable CompletionService for testing.
// It records every prompt it receives.
type MockCompletionService struct {
	mu      sync.Mutex
	answer  string
	err     error
	prompts []string
}

// NewMockCompletionService creates a mock that answers with answer
func NewMockCompletionService(answer string) *MockCompletionService {
	return &MockCompletionService{answer: answer}
}

// SetAnswer changes the canned answer
func (m *MockCompletionService) SetAnswer(answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.answer = answer
	m.err = nil
}

// FailWith makes every following call fail with err wrapped in domain.ErrUpstream
func (m *MockCompletionService) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockCompletionService) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, m.err)
	}
	return m.answer, nil
}

func (m *MockCompletionService) Model() string {
	return "mock-completion-model"
}

func (m *MockCompletionService) Close() error {
	return nil
}

// Calls returns how many completions were requested
func (m *MockCompletionService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// LastPrompt returns the most recent prompt, or "" if none
func (m *MockCompletionService) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}
