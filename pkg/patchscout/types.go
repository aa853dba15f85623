package patchscout

import (
	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
)

// Mode selects the retrieval strategy.
type Mode string

// Search modes. Any other value, including "", searches semantically.
const (
	ModeLexical  Mode = Mode(mode.Lexical)
	ModeSemantic Mode = Mode(mode.Semantic)
)

// Record is one labeled patch note.
type Record struct {
	Text  string
	Label string
}

// SearchOptions tunes a single search.
type SearchOptions struct {
	Mode  Mode   // default semantic
	Label string // case-insensitive substring of the category; empty disables filtering
	TopK  int    // 0 selects the default (5)
}

// Hit is one ranked record. Doc is the record's position in the corpus.
// Score is a BM25 score (higher is better) in lexical mode and a squared L2
// distance (lower is better) in semantic mode.
type Hit struct {
	Doc   int
	Text  string
	Label string
	Score float64
}

// BenchmarkQuery is one evaluation query with its relevance keywords.
type BenchmarkQuery struct {
	Query    string
	Keywords []string
}

// ModeScore holds the aggregate evaluation scores of one mode.
type ModeScore struct {
	Mode     Mode
	MAP      float64
	MeanNDCG float64
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
