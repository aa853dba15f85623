package evaluation

import "strings"

// Query is a benchmark query with its relevance keywords.
type Query struct {
	Text     string   `yaml:"query"`
	Keywords []string `yaml:"keywords"`
}

// Judge decides whether a retrieved text is relevant to a benchmark query.
type Judge interface {
	Relevant(q Query, text string) bool
}

// KeywordJudge treats a text as relevant when it contains any of the query's
// keywords, case-insensitively. It is a proxy for human judgments: it rewards
// lexical overlap and can miss paraphrases.
type KeywordJudge struct{}

// Relevant implements Judge.
func (KeywordJudge) Relevant(q Query, text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range q.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
