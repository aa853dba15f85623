// Package engine wires the corpus, the indices, the classifier and the
// services that query them into one explicitly passed system context.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/patchscout/internal/classifier"
	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/corpus"
	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/domain/search/request"
	"github.com/kailas-cloud/patchscout/internal/domain/search/result"
	"github.com/kailas-cloud/patchscout/internal/index/lexical"
	"github.com/kailas-cloud/patchscout/internal/index/vector"
	"github.com/kailas-cloud/patchscout/internal/usecase/classify"
	"github.com/kailas-cloud/patchscout/internal/usecase/search"
)

// Options configures Build.
type Options struct {
	Embedder         domain.Embedder
	EmbedBatchSize   int
	OversampleFactor int
	Classifier       classifier.Options
}

// Engine is built once and is read-only afterwards. All methods are safe for
// concurrent use.
type Engine struct {
	corpus   *corpus.Corpus
	lexical  *lexical.Index
	vector   *vector.Index
	model    *classifier.Model
	search   *search.Service
	classify *classify.Service
}

// Build constructs the lexical index, the vector index and the classifier in
// parallel. It returns only after all three are complete; the first failure
// cancels the rest.
func Build(ctx context.Context, c *corpus.Corpus, opts Options, logger *zap.Logger) (*Engine, error) {
	if opts.Embedder == nil {
		return nil, fmt.Errorf("build engine: embedder is required")
	}
	e := &Engine{corpus: c}
	texts, labels := c.Texts(), c.Labels()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t := time.Now()
		e.lexical = lexical.Build(texts)
		logger.Debug("lexical index built", zap.Int("docs", e.lexical.Len()), zap.Duration("took", time.Since(t)))
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		idx, err := vector.Build(gctx, opts.Embedder, texts, vector.Options{BatchSize: opts.EmbedBatchSize})
		if err != nil {
			return fmt.Errorf("vector index: %w", err)
		}
		e.vector = idx
		logger.Debug("vector index built",
			zap.Int("docs", idx.Len()), zap.Int("dims", idx.Dimensions()), zap.Duration("took", time.Since(t)))
		return nil
	})
	g.Go(func() error {
		t := time.Now()
		m, err := classifier.Train(gctx, texts, labels, opts.Classifier)
		if err != nil {
			return fmt.Errorf("classifier: %w", err)
		}
		e.model = m
		logger.Debug("classifier trained",
			zap.Int("classes", len(m.Classes())), zap.Int("vocabulary", m.VocabularySize()), zap.Duration("took", time.Since(t)))
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	e.search = search.New(c, e.lexical, e.vector, opts.OversampleFactor, logger)
	e.classify = classify.New(e.model, logger)

	logger.Info("engine ready",
		zap.Int("records", c.Len()),
		zap.Strings("categories", c.Categories()),
		zap.Duration("took", time.Since(start)),
	)
	return e, nil
}

// Search runs one ranked query. An empty filter disables label filtering.
func (e *Engine) Search(ctx context.Context, query string, m mode.Mode, filter string, topK int) (result.List, error) {
	req, err := request.New(query, m, filter, topK)
	if err != nil {
		return result.List{}, err
	}
	return e.search.Search(ctx, &req)
}

// Predict returns the predicted category of text.
func (e *Engine) Predict(ctx context.Context, text string) (string, error) {
	return e.classify.Predict(ctx, text)
}

// Searcher returns the search service for callers that build requests themselves.
func (e *Engine) Searcher() *search.Service { return e.search }

// Corpus returns the indexed corpus.
func (e *Engine) Corpus() *corpus.Corpus { return e.corpus }

// Classes returns the labels the classifier can predict.
func (e *Engine) Classes() []string { return e.classify.Classes() }
