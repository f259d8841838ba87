package services

import (
	"strings"

	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Retriever selects document contents whose tags appear in a question
type Retriever struct {
	store driven.DocumentStore
}

// NewRetriever creates a Retriever over the given store
func NewRetriever(store driven.DocumentStore) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns matching contents in store order. The result is never nil.
func (r *Retriever) Retrieve(question string) []string {
	q := strings.ToLower(question)

	docs := make([]string, 0)
	for _, doc := range r.store.All() {
		if doc.MatchesQuestion(q) {
			docs = append(docs, doc.Content)
		}
	}
	return docs
}
