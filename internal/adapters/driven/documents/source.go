package documents

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/fincoach/internal/core/domain"
	"github.com/custodia-labs/fincoach/internal/core/ports/driven"
)

//go:embed finance_docs.json
var embeddedDocuments []byte

var (
	_ driven.DocumentSource = (*EmbeddedSource)(nil)
	_ driven.DocumentSource = (*FileSource)(nil)
)

// EmbeddedSource loads the default document set compiled into the binary
type EmbeddedSource struct{}

// NewEmbeddedSource creates an EmbeddedSource
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// Load parses the embedded JSON document set
func (s *EmbeddedSource) Load(ctx context.Context) ([]domain.Document, error) {
	return decodeJSON(embeddedDocuments)
}

// FileSource loads documents from a JSON or YAML file on disk
type FileSource struct {
	path string
}

// NewFileSource creates a FileSource. The format follows the file extension.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and parses the file
func (s *FileSource) Load(ctx context.Context) ([]domain.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".json":
		return decodeJSON(data)
	case ".yaml", ".yml":
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: unsupported documents file extension %q", domain.ErrInvalidInput, ext)
	}
}

func decodeJSON(data []byte) ([]domain.Document, error) {
	var docs []domain.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents JSON: %w", err)
	}
	return docs, nil
}

func decodeYAML(data []byte) ([]domain.Document, error) {
	var docs []domain.Document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse documents YAML: %w", err)
	}
	return docs, nil
}

// Load reads every document from src and builds a Store.
// An empty set is allowed; retrieval then always returns nothing.
func Load(ctx context.Context, src driven.DocumentSource) (*Store, error) {
	docs, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(docs)
}
