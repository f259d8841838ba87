package driven

import (
	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateCompletionService creates a completion client from settings
	// Returns an error wrapping ErrInvalidInput if settings are not configured
	CreateCompletionService(settings *domain.LLMSettings) (CompletionService, error)
}
