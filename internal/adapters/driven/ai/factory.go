package ai

import (
	"fmt"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateCompletionService creates a completion service from settings.
// Both supported providers speak the OpenAI chat/completions dialect.
func (f *Factory) CreateCompletionService(settings *domain.LLMSettings) (driven.CompletionService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: completion provider and API key are required", domain.ErrInvalidInput)
	}

	switch settings.Provider {
	case domain.AIProviderOpenRouter, domain.AIProviderOpenAI:
		return NewOpenAICompletion(*settings)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
}
