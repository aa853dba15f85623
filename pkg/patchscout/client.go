package patchscout

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/classifier"
	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/corpus"
	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/embedding/hashing"
	"github.com/kailas-cloud/patchscout/internal/engine"
	corpusrepo "github.com/kailas-cloud/patchscout/internal/repository/corpus"
	"github.com/kailas-cloud/patchscout/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/patchscout/internal/usecase/health"
)

// Client is the PatchScout SDK entry point. It is read-only once built and
// safe for concurrent use.
type Client struct {
	engine  *engine.Engine
	health  *healthuc.Service
	obs     *observer
	dropped int
}

// Open loads a CSV or XLSX corpus with raw_text and label columns and builds
// the indices and the classifier.
func Open(ctx context.Context, path string, opts ...Option) (*Client, error) {
	cfg := newConfig(opts)
	c, err := corpusrepo.NewLoader(zap.NewNop()).Load(path, cfg.format)
	if err != nil {
		return nil, fmt.Errorf("patchscout: %w", err)
	}
	return build(ctx, c, cfg)
}

// New builds a client from in-memory records. Records with an empty text or
// label are dropped.
func New(ctx context.Context, records []Record, opts ...Option) (*Client, error) {
	rows := make([]corpus.Row, len(records))
	for i, r := range records {
		rows[i] = corpus.Row{Text: r.Text, Label: r.Label}
	}
	return build(ctx, corpus.New(rows), newConfig(opts))
}

func newConfig(opts []Option) *clientConfig {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	return cfg
}

func build(ctx context.Context, c *corpus.Corpus, cfg *clientConfig) (_ *Client, err error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() { obs.observe("build", start, err, "records", c.Len()) }()

	var emb domain.Embedder = hashing.New(cfg.dimensions)
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	}

	e, err := engine.Build(ctx, c, engine.Options{
		Embedder:         emb,
		EmbedBatchSize:   cfg.batchSize,
		OversampleFactor: cfg.oversample,
		Classifier:       classifier.Options{Seed: cfg.seed},
	}, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("patchscout: %w", err)
	}

	return &Client{
		engine:  e,
		health:  healthuc.New(e.Corpus(), nil, nil),
		obs:     obs,
		dropped: c.Dropped(),
	}, nil
}

// Len returns the number of indexed records.
func (c *Client) Len() int { return c.engine.Corpus().Len() }

// Dropped returns how many input records were skipped for an empty text or label.
func (c *Client) Dropped() int { return c.dropped }

// Categories returns the distinct labels of the corpus, sorted.
func (c *Client) Categories() []string { return c.engine.Classes() }

// Search ranks records against query.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) (_ []Hit, err error) {
	start := time.Now()
	m := mode.Parse(string(opts.Mode))
	defer func() { c.obs.observe("search", start, err, "mode", m.String()) }()

	list, err := c.engine.Search(ctx, query, m, opts.Label, opts.TopK)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	hits := make([]Hit, len(list.Items()))
	for i, r := range list.Items() {
		hits[i] = Hit{Doc: r.Doc(), Text: r.Text(), Label: r.Label(), Score: r.Score()}
	}
	return hits, nil
}

// Predict returns the most likely category for text.
func (c *Client) Predict(ctx context.Context, text string) (_ string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("predict", start, err) }()

	label, err := c.engine.Predict(ctx, text)
	if err != nil {
		return "", fmt.Errorf("predict: %w", err)
	}
	return label, nil
}

// Evaluate scores each mode against queries (the built-in benchmark when
// queries is empty) and returns per-mode MAP and mean NDCG@10.
func (c *Client) Evaluate(ctx context.Context, modes []Mode, queries []BenchmarkQuery) (_ []ModeScore, err error) {
	start := time.Now()
	defer func() { c.obs.observe("evaluate", start, err) }()

	qs := evaluation.DefaultBenchmark()
	if len(queries) > 0 {
		qs = make([]evaluation.Query, len(queries))
		for i, q := range queries {
			qs[i] = evaluation.Query{Text: q.Query, Keywords: q.Keywords}
		}
	}
	ms := make([]mode.Mode, len(modes))
	for i, m := range modes {
		ms[i] = mode.Parse(string(m))
	}

	rep, err := evaluation.NewHarness(c.engine.Searcher(), nil, zap.NewNop()).Run(ctx, ms, qs)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	out := make([]ModeScore, len(rep.Modes))
	for i, mr := range rep.Modes {
		out[i] = ModeScore{Mode: Mode(mr.Mode), MAP: mr.MAP, MeanNDCG: mr.MeanNDCG}
	}
	return out, nil
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
