package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Ensure OpenAICompletion implements CompletionService
var _ driven.CompletionService = (*OpenAICompletion)(nil)

// OpenAICompletion implements CompletionService against any OpenAI-compatible
// chat/completions endpoint (OpenRouter, OpenAI).
type OpenAICompletion struct {
	apiKey       string
	model        string
	baseURL      string
	systemPrompt string
	referer      string
	title        string
	client       *http.Client
}

// NewOpenAICompletion creates a completion client. Unset settings take provider defaults.
func NewOpenAICompletion(settings domain.LLMSettings) (driven.CompletionService, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%w: completion API key is required", domain.ErrInvalidInput)
	}

	settings = settings.WithDefaults()

	return &OpenAICompletion{
		apiKey:       settings.APIKey,
		model:        settings.Model,
		baseURL:      strings.TrimRight(settings.BaseURL, "/"),
		systemPrompt: settings.SystemPrompt,
		referer:      settings.Referer,
		title:        settings.Title,
		// No client timeout; the request context bounds the call.
		client: &http.Client{},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// completionRequest is the request body for the chat/completions API
type completionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// completionResponse is the response from the chat/completions API
type completionResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

// Complete sends one chat completion request and returns the first choice's text
func (c *OpenAICompletion) Complete(ctx context.Context, prompt string) (string, error) {
	reqBody := completionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: c.systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	resp, err := c.doRequest(ctx, reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", domain.ErrUpstream)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstream, domain.ErrEmptyCompletion)
	}
	return text, nil
}

// Model returns the model name being used
func (c *OpenAICompletion) Model() string {
	return c.model
}

// Close releases idle connections held by the client
func (c *OpenAICompletion) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// doRequest makes a request to the chat/completions API
func (c *OpenAICompletion) doRequest(ctx context.Context, reqBody completionRequest) (*completionResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var compResp completionResponse
	if err := json.Unmarshal(respBody, &compResp); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if compResp.Error != nil {
		return nil, fmt.Errorf("API error: %s (status: %d, type: %s)",
			compResp.Error.Message, resp.StatusCode, compResp.Error.Type)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return &compResp, nil
}
