package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentSource = (*DocumentSource)(nil)

// DocumentSource loads reference documents from the documents table
type DocumentSource struct {
	db queryer
}

// NewDocumentSource creates a new DocumentSource
func NewDocumentSource(db *DB) *DocumentSource {
	return &DocumentSource{db: db}
}

// Load reads every document ordered by position
func (s *DocumentSource) Load(ctx context.Context) ([]domain.Document, error) {
	query := `
		SELECT content, tags
		FROM documents
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]domain.Document, 0)
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.Content, pq.Array(&doc.Tags)); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents: %w", err)
	}

	return docs, nil
}
