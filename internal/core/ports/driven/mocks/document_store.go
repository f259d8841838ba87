package mocks

import (
	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// MockDocumentStore is a fixed, in-order DocumentStore for testing
type MockDocumentStore struct {
	documents []domain.Document
}

// NewMockDocumentStore creates a MockDocumentStore holding docs in the given order
func NewMockDocumentStore(docs ...domain.Document) *MockDocumentStore {
	return &MockDocumentStore{documents: docs}
}

func (m *MockDocumentStore) All() []domain.Document {
	out := make([]domain.Document, len(m.documents))
	copy(out, m.documents)
	return out
}

func (m *MockDocumentStore) Len() int {
	return len(m.documents)
}
