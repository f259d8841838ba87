package services

import (
	"strings"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// PromptComposer builds the single text block sent to the model
type PromptComposer struct {
	framing string
}

// NewPromptComposer creates a PromptComposer. An empty framing uses
// the default specialization sentence.
func NewPromptComposer(framing string) *PromptComposer {
	if framing == "" {
		framing = domain.AssistantSpecialization
	}
	return &PromptComposer{framing: framing}
}

// Compose merges framing, history, retrieved documents and the new question.
// The Documents section is omitted when docs is empty.
func (c *PromptComposer) Compose(history []domain.Message, docs []string, question string) string {
	var sb strings.Builder

	sb.WriteString(c.framing)
	sb.WriteString("\nGiven the conversation history below, provide a relevant response to the new question.\n\n")

	sb.WriteString("Conversation history:\n")
	for _, msg := range history {
		sb.WriteString(msg.Speaker)
		sb.WriteString(": ")
		sb.WriteString(msg.Text)
		sb.WriteString("\n")
	}

	if len(docs) > 0 {
		sb.WriteString("\nDocuments:\n")
		sb.WriteString(strings.Join(docs, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\nNew question: ")
	sb.WriteString(question)
	return sb.String()
}
