package services

import "strings"

// DefaultTopicKeywords is the allow-list of in-scope topics.
// Conversational words are included so follow-ups like "tell me more" pass.
// "budget" is listed next to "budgeting" so "how do I budget ..." is accepted.
var DefaultTopicKeywords = []string{
	"personal finance",
	"expense",
	"expense management",
	"islamic finance",
	"budgeting",
	"budget",
	"investing",
	"saving",
	"debt management",
	"financial planning",
	"islamic banking",
	"shariah compliance",
	"more",
	"further",
	"elaborate",
	"explain",
	"purpose",
	"previous",
	"thanks",
	"hello",
	"tell",
}

// TopicFilter decides whether a question is in scope using
// case-insensitive substring matching against an allow-list.
type TopicFilter struct {
	keywords []string
}

// NewTopicFilter creates a TopicFilter. A nil or empty keyword list
// falls back to DefaultTopicKeywords.
func NewTopicFilter(keywords []string) *TopicFilter {
	if len(keywords) == 0 {
		keywords = DefaultTopicKeywords
	}

	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(k)
		if k == "" {
			continue
		}
		lowered = append(lowered, k)
	}

	return &TopicFilter{keywords: lowered}
}

// IsInScope returns true iff the lower-cased question contains any keyword
func (f *TopicFilter) IsInScope(question string) bool {
	q := strings.ToLower(question)
	for _, k := range f.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// Keywords returns a copy of the lower-cased allow-list
func (f *TopicFilter) Keywords() []string {
	out := make([]string, len(f.keywords))
	copy(out, f.keywords)
	return out
}
