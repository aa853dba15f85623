package search

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/domain/search/request"
	"github.com/kailas-cloud/patchscout/internal/domain/search/result"
	"github.com/kailas-cloud/patchscout/internal/metrics"
)

// DefaultOversampleFactor is how many ranked candidates are scanned per
// requested result before the label filter is applied.
const DefaultOversampleFactor = 3

// candidate is a ranked document before filtering.
type candidate struct {
	doc   int
	score float64
}

// Service ranks corpus records in lexical or semantic mode.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	corpus     Corpus
	lexical    LexicalIndex
	vector     VectorIndex
	oversample int
	logger     *zap.Logger
}

// New creates a search service. oversample <= 0 selects DefaultOversampleFactor.
func New(corpus Corpus, lex LexicalIndex, vec VectorIndex, oversample int, logger *zap.Logger) *Service {
	if oversample <= 0 {
		oversample = DefaultOversampleFactor
	}
	return &Service{corpus: corpus, lexical: lex, vector: vec, oversample: oversample, logger: logger}
}

// Search ranks the corpus for req. Candidates are drawn from a window of
// oversample*topK ranked documents, filtered by label, and cut at topK.
// The list may be shorter than topK when the filter rejects too many candidates.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.List, error) {
	start := time.Now()
	m := req.Mode()
	window := s.oversample * req.TopK()

	var (
		candidates []candidate
		err        error
	)
	switch m {
	case mode.Lexical:
		candidates = s.searchLexical(req.Query(), window)
	default:
		candidates, err = s.searchSemantic(ctx, req.Query(), window)
	}
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(m.String(), "error").Inc()
		return result.List{}, err
	}

	var allow *roaring.Bitmap
	if req.FilterLabel() != "" {
		allow = s.corpus.AllowSet(req.FilterLabel())
	}

	items := make([]result.Result, 0, req.TopK())
	for _, c := range candidates {
		if len(items) == req.TopK() {
			break
		}
		if allow != nil && !allow.Contains(uint32(c.doc)) {
			continue
		}
		rec := s.corpus.At(c.doc)
		items = append(items, result.New(c.doc, rec.Text(), rec.Label(), c.score))
	}
	list := result.NewList(items, req.TopK(), window)

	metrics.SearchRequestsTotal.WithLabelValues(m.String(), "ok").Inc()
	metrics.SearchDuration.WithLabelValues(m.String()).Observe(time.Since(start).Seconds())
	if list.Shortfall() {
		metrics.SearchShortfallTotal.WithLabelValues(m.String()).Inc()
		s.logger.Debug("search shortfall",
			zap.String("mode", m.String()),
			zap.String("filter", req.FilterLabel()),
			zap.Int("requested", list.Requested()),
			zap.Int("delivered", list.Delivered()),
			zap.Int("window", window),
		)
	}
	return list, nil
}

func (s *Service) searchLexical(query string, window int) []candidate {
	hits := s.lexical.Rank(query, window)
	out := make([]candidate, len(hits))
	for i, h := range hits {
		out[i] = candidate{doc: h.Doc, score: h.Score}
	}
	return out
}

func (s *Service) searchSemantic(ctx context.Context, query string, window int) ([]candidate, error) {
	neighbors, err := s.vector.SearchText(ctx, query, window)
	if err != nil {
		return nil, fmt.Errorf("search vector: %w", err)
	}
	out := make([]candidate, len(neighbors))
	for i, n := range neighbors {
		out[i] = candidate{doc: n.Doc, score: float64(n.Distance)}
	}
	return out, nil
}
