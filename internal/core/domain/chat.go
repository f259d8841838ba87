package domain

import (
	"errors"
	"fmt"
)

// Speakers used by the chat UI when it records a conversation
const (
	SpeakerUser      = "You"
	SpeakerAssistant = "FinCoach"
)

// Fixed user-facing messages
const (
	ScopeViolationMessage = "Your question is out of scope. Please ask a question related to personal finance, expense management, or Islamic finance."
	UpstreamErrorMessage  = "Failed to fetch response from API"

	// CannedReply is what the UI shows instead of any non-success response
	CannedReply = "I'm a finance chatbot. Please make sure your question is related to personal finance, expense management, or Islamic finance."
)

// Message is one turn of a conversation.
// The JSON shape matches what the browser UI sends.
type Message struct {
	Speaker string `json:"user" example:"You"`
	Text    string `json:"text" example:"How do I start budgeting?"`
}

// ChatRequest is the input of one pipeline run.
// History is owned by the caller and passed in full on every call.
type ChatRequest struct {
	Question string    `json:"prompt" example:"How do I budget my salary?"`
	History  []Message `json:"history"`
}

// ChatResult is a successful pipeline outcome
type ChatResult struct {
	Answer string `json:"response" example:"Start by listing your fixed monthly expenses..."`
}

// ErrorKind classifies pipeline failures
type ErrorKind string

const (
	// ErrorKindScopeViolation is client-correctable: ask a finance question
	ErrorKindScopeViolation ErrorKind = "scope_violation"
	// ErrorKindUpstream means the model call failed
	ErrorKindUpstream ErrorKind = "upstream_error"
)

// ChatError is a terminal pipeline failure carrying the message shown to the user
type ChatError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// NewScopeViolation returns the fixed out-of-scope error
func NewScopeViolation() *ChatError {
	return &ChatError{
		Kind:    ErrorKindScopeViolation,
		Message: ScopeViolationMessage,
		Err:     ErrScopeViolation,
	}
}

// NewUpstreamError wraps a completion failure behind the generic message.
// The returned error always matches ErrUpstream.
func NewUpstreamError(cause error) *ChatError {
	switch {
	case cause == nil:
		cause = ErrUpstream
	case !errors.Is(cause, ErrUpstream):
		cause = fmt.Errorf("%w: %w", ErrUpstream, cause)
	}
	return &ChatError{
		Kind:    ErrorKindUpstream,
		Message: UpstreamErrorMessage,
		Err:     cause,
	}
}

func (e *ChatError) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ChatError) Unwrap() error {
	return e.Err
}
