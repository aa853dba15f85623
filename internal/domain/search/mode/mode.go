package mode

import "strings"

// Mode is the retrieval strategy.
type Mode string

// Search mode constants.
const (
	// Lexical ranks by BM25 term overlap.
	Lexical Mode = "lexical"
	// Semantic ranks by embedding distance.
	Semantic Mode = "semantic"
)

// All lists every mode in evaluation order.
var All = []Mode{Lexical, Semantic}

// Parse maps a user-supplied mode name to a Mode. "keyword" and "bm25" are
// aliases of Lexical. Anything else, including "hybrid" and "", is Semantic.
func Parse(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lexical", "keyword", "bm25":
		return Lexical
	default:
		return Semantic
	}
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Lexical || m == Semantic
}

// String implements fmt.Stringer.
func (m Mode) String() string { return string(m) }
