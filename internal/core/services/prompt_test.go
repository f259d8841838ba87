package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

func TestPromptComposer_Layout(t *testing.T) {
	c := NewPromptComposer("")
	history := []domain.Message{
		{Speaker: "You", Text: "hello"},
		{Speaker: "FinCoach", Text: "Hi! Ask me about budgeting."},
	}
	docs := []string{"doc one", "doc two"}

	got := c.Compose(history, docs, "tell me more")

	want := domain.AssistantSpecialization + "\n" +
		"Given the conversation history below, provide a relevant response to the new question.\n" +
		"\n" +
		"Conversation history:\n" +
		"You: hello\n" +
		"FinCoach: Hi! Ask me about budgeting.\n" +
		"\n" +
		"Documents:\n" +
		"doc one\n" +
		"doc two\n" +
		"\n" +
		"New question: tell me more"
	assert.Equal(t, want, got)
}

func TestPromptComposer_OmitsDocumentsWhenNoneRetrieved(t *testing.T) {
	c := NewPromptComposer("")

	got := c.Compose(nil, []string{}, "hello")

	assert.NotContains(t, got, "Documents:")
	assert.True(t, strings.HasSuffix(got, "New question: hello"))
	assert.Contains(t, got, "Conversation history:\n\nNew question: hello")
}

func TestPromptComposer_SectionOrder(t *testing.T) {
	c := NewPromptComposer("")

	got := c.Compose([]domain.Message{{Speaker: "You", Text: "first"}}, []string{"snippet"}, "last")

	framing := strings.Index(got, domain.AssistantSpecialization)
	history := strings.Index(got, "You: first")
	documents := strings.Index(got, "Documents:\nsnippet")
	question := strings.Index(got, "New question: last")

	assert.Equal(t, 0, framing)
	assert.Less(t, framing, history)
	assert.Less(t, history, documents)
	assert.Less(t, documents, question)
}

func TestPromptComposer_Pure(t *testing.T) {
	c := NewPromptComposer("")
	history := []domain.Message{{Speaker: "You", Text: "saving tips?"}}
	docs := []string{"Pay yourself first."}

	first := c.Compose(history, docs, "more")
	second := c.Compose(history, docs, "more")

	assert.Equal(t, first, second)
	assert.Equal(t, []domain.Message{{Speaker: "You", Text: "saving tips?"}}, history)
	assert.Equal(t, []string{"Pay yourself first."}, docs)
}

func TestPromptComposer_CustomFraming(t *testing.T) {
	c := NewPromptComposer("You are a test assistant.")

	got := c.Compose(nil, nil, "q")

	assert.True(t, strings.HasPrefix(got, "You are a test assistant.\nGiven"))
}
