package driven

import (
	"context"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// DocumentStore exposes the fixed set of reference documents.
// It is populated once at startup and is read-only afterwards,
// so implementations must be safe for concurrent reads.
type DocumentStore interface {
	// All returns every document in store order
	All() []domain.Document

	// Len returns the number of documents
	Len() int
}

// DocumentSource loads the raw documents a DocumentStore is built from
type DocumentSource interface {
	// Load reads every document in a stable order
	Load(ctx context.Context) ([]domain.Document, error)
}
