// Package evaluation scores retrieval quality against a benchmark of queries
// with keyword-based relevance judgments.
package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/domain/search/request"
	"github.com/kailas-cloud/patchscout/internal/domain/search/result"
	"github.com/kailas-cloud/patchscout/internal/metrics"
)

// Cutoffs used by every run.
const (
	DefaultDepth   = 10
	PrecisionDepth = 5
)

// Searcher runs a ranked search.
type Searcher interface {
	Search(ctx context.Context, req *request.Request) (result.List, error)
}

// QueryScore holds the metrics of one benchmark query in one mode.
type QueryScore struct {
	Query     string
	Relevance []int
	P5        float64
	NDCG      float64
	AP        float64
}

// ModeReport aggregates one mode over the whole benchmark.
type ModeReport struct {
	Mode     mode.Mode
	Queries  []QueryScore
	MAP      float64
	MeanNDCG float64
}

// Report is the outcome of a Harness run.
type Report struct {
	RunID    string
	Started  time.Time
	Duration time.Duration
	Modes    []ModeReport
}

// Harness evaluates a Searcher. It only reads from the searcher.
type Harness struct {
	searcher Searcher
	judge    Judge
	depth    int
	logger   *zap.Logger
}

// NewHarness creates a harness. A nil judge selects KeywordJudge.
func NewHarness(searcher Searcher, judge Judge, logger *zap.Logger) *Harness {
	if judge == nil {
		judge = KeywordJudge{}
	}
	return &Harness{searcher: searcher, judge: judge, depth: DefaultDepth, logger: logger}
}

// Run searches every query in every mode, unfiltered, at depth 10 and scores
// the results. Per-mode MAP and mean NDCG@10 are also exported as gauges.
func (h *Harness) Run(ctx context.Context, modes []mode.Mode, queries []Query) (*Report, error) {
	rep := &Report{RunID: uuid.NewString(), Started: time.Now()}
	log := h.logger.With(zap.String("run_id", rep.RunID))

	for _, m := range modes {
		mr := ModeReport{Mode: m, Queries: make([]QueryScore, 0, len(queries))}
		var aps, ndcgs []float64

		for _, q := range queries {
			qs, err := h.score(ctx, m, q)
			if err != nil {
				return nil, fmt.Errorf("evaluate %s %q: %w", m, q.Text, err)
			}
			mr.Queries = append(mr.Queries, qs)
			aps = append(aps, qs.AP)
			ndcgs = append(ndcgs, qs.NDCG)
		}

		mr.MAP = mean(aps)
		mr.MeanNDCG = mean(ndcgs)
		rep.Modes = append(rep.Modes, mr)

		metrics.EvalMAP.WithLabelValues(m.String()).Set(mr.MAP)
		metrics.EvalNDCG.WithLabelValues(m.String()).Set(mr.MeanNDCG)
		log.Info("evaluation mode complete",
			zap.String("mode", m.String()),
			zap.Int("queries", len(queries)),
			zap.Float64("map", mr.MAP),
			zap.Float64("ndcg", mr.MeanNDCG),
		)
	}

	rep.Duration = time.Since(rep.Started)
	return rep, nil
}

func (h *Harness) score(ctx context.Context, m mode.Mode, q Query) (QueryScore, error) {
	req, err := request.New(q.Text, m, "", h.depth)
	if err != nil {
		return QueryScore{}, err
	}
	list, err := h.searcher.Search(ctx, &req)
	if err != nil {
		return QueryScore{}, err
	}

	rels := make([]int, h.depth)
	for i, r := range list.Items() {
		if i >= h.depth {
			break
		}
		if h.judge.Relevant(q, r.Text()) {
			rels[i] = 1
		}
	}

	return QueryScore{
		Query:     q.Text,
		Relevance: rels,
		P5:        PrecisionAt(rels, PrecisionDepth),
		NDCG:      NDCG(rels, h.depth),
		AP:        AveragePrecision(rels),
	}, nil
}
