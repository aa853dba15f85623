package request

import (
	"fmt"

	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 5
	MaxTopK        = 500
)

// Request is a validated search query.
type Request struct {
	query       string
	searchMode  mode.Mode
	filterLabel string
	topK        int
}

// New validates and normalizes search parameters.
// An empty query is allowed. topK=0 selects DefaultTopK; larger values are
// clamped to MaxTopK. An invalid mode falls back to Semantic.
func New(query string, m mode.Mode, filterLabel string, topK int) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars): %w", MaxQueryLength, domain.ErrInvalidRequest)
	}
	if !m.IsValid() {
		m = mode.Semantic
	}
	if topK < 0 {
		return Request{}, fmt.Errorf("top_k must be positive: %w", domain.ErrInvalidRequest)
	}
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}

	return Request{
		query:       query,
		searchMode:  m,
		filterLabel: filterLabel,
		topK:        topK,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// FilterLabel returns the label substring filter ("" means no filter).
func (r *Request) FilterLabel() string { return r.filterLabel }

// TopK returns the maximum number of results to return.
func (r *Request) TopK() int { return r.topK }
