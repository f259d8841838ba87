package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven/mocks"
)

func testDocuments() []domain.Document {
	return []domain.Document{
		{Content: "Budgets track income against expenses.", Tags: []string{"budget", "expense"}},
		{Content: "Riba (interest) is prohibited in Islamic finance.", Tags: []string{"riba", "Islamic Finance"}},
		{Content: "An emergency fund covers 3-6 months of expenses.", Tags: []string{"emergency", "saving"}},
	}
}

func TestRetriever_MatchesTagsInStoreOrder(t *testing.T) {
	r := NewRetriever(mocks.NewMockDocumentStore(testDocuments()...))

	got := r.Retrieve("Should my BUDGET include an emergency fund?")

	assert.Equal(t, []string{
		"Budgets track income against expenses.",
		"An emergency fund covers 3-6 months of expenses.",
	}, got)
}

func TestRetriever_CaseInsensitiveTags(t *testing.T) {
	r := NewRetriever(mocks.NewMockDocumentStore(testDocuments()...))

	got := r.Retrieve("explain islamic finance")

	assert.Equal(t, []string{"Riba (interest) is prohibited in Islamic finance."}, got)
}

func TestRetriever_NoMatchReturnsEmpty(t *testing.T) {
	r := NewRetriever(mocks.NewMockDocumentStore(testDocuments()...))

	got := r.Retrieve("hello")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRetriever_Deterministic(t *testing.T) {
	r := NewRetriever(mocks.NewMockDocumentStore(testDocuments()...))
	q := "budget, riba and saving"

	first := r.Retrieve(q)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Retrieve(q))
	}
	assert.Len(t, first, 3)
}
