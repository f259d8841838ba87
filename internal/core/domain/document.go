package domain

import (
	"fmt"
	"strings"
)

// Document is a tagged reference snippet used to ground answers.
// Documents are loaded once at startup and never mutated.
type Document struct {
	Content string   `json:"content" yaml:"content"`
	Tags    []string `json:"tags" yaml:"tags"`
}

// Validate checks the document has content and only non-blank tags.
// A blank tag would match every question.
func (d Document) Validate() error {
	if strings.TrimSpace(d.Content) == "" {
		return fmt.Errorf("%w: document content is empty", ErrInvalidInput)
	}
	if len(d.Tags) == 0 {
		return fmt.Errorf("%w: document has no tags", ErrInvalidInput)
	}
	for i, tag := range d.Tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: tag %d is blank", ErrInvalidInput, i)
		}
	}
	return nil
}

// MatchesQuestion reports whether any tag appears, case-insensitively,
// inside the already lower-cased question.
func (d Document) MatchesQuestion(lowerQuestion string) bool {
	for _, tag := range d.Tags {
		tag = strings.ToLower(tag)
		if tag != "" && strings.Contains(lowerQuestion, tag) {
			return true
		}
	}
	return false
}
