package domain

// AIProvider identifies the hosted language model provider
type AIProvider string

const (
	AIProviderOpenRouter AIProvider = "openrouter"
	AIProviderOpenAI     AIProvider = "openai"
)

// Defaults taken from the hosted deployment
const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenAIBaseURL     = "https://api.openai.com/v1"
	DefaultLLMModel          = "meta-llama/llama-3.1-8b-instruct:free"
	DefaultLLMReferer        = "http://localhost:3000"
	DefaultLLMTitle          = "Finance Chatbot"

	// AssistantSpecialization frames every prompt and is sent as the system instruction
	AssistantSpecialization = "You are a chatbot specializing in personal finance, expense management, and Islamic finance."
)

// LLMSettings configures the completion client. It is built once at startup.
type LLMSettings struct {
	Provider     AIProvider `json:"provider"`
	APIKey       string     `json:"-"` // Never serialize
	BaseURL      string     `json:"base_url,omitempty"`
	Model        string     `json:"model"`
	SystemPrompt string     `json:"system_prompt,omitempty"`

	// Attribution headers sent to OpenRouter
	Referer string `json:"referer,omitempty"`
	Title   string `json:"title,omitempty"`
}

// IsConfigured returns true if the settings can build a client
func (s *LLMSettings) IsConfigured() bool {
	return s.Provider != "" && s.APIKey != ""
}

// WithDefaults fills unset fields with provider defaults
func (s LLMSettings) WithDefaults() LLMSettings {
	if s.Provider == "" {
		s.Provider = AIProviderOpenRouter
	}
	if s.BaseURL == "" {
		switch s.Provider {
		case AIProviderOpenAI:
			s.BaseURL = DefaultOpenAIBaseURL
		default:
			s.BaseURL = DefaultOpenRouterBaseURL
		}
	}
	if s.Model == "" {
		s.Model = DefaultLLMModel
	}
	if s.SystemPrompt == "" {
		s.SystemPrompt = AssistantSpecialization
	}
	if s.Provider == AIProviderOpenRouter {
		if s.Referer == "" {
			s.Referer = DefaultLLMReferer
		}
		if s.Title == "" {
			s.Title = DefaultLLMTitle
		}
	}
	return s
}
