// Package documents holds the read-only reference documents the retriever
// searches, and the sources they are loaded from at startup.
package documents

import (
	"fmt"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Ensure Store implements DocumentStore
var _ driven.DocumentStore = (*Store)(nil)

// Store is an immutable in-memory DocumentStore
type Store struct {
	documents []domain.Document
}

// NewStore validates docs and builds a Store holding them in the given order
func NewStore(docs []domain.Document) (*Store, error) {
	documents := make([]domain.Document, len(docs))
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		documents[i] = domain.Document{
			Content: doc.Content,
			Tags:    append([]string(nil), doc.Tags...),
		}
	}
	return &Store{documents: documents}, nil
}

// All returns a copy of every document in store order
func (s *Store) All() []domain.Document {
	out := make([]domain.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// Len returns the number of documents
func (s *Store) Len() int {
	return len(s.documents)
}
