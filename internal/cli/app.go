package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/classifier"
	"github.com/kailas-cloud/patchscout/internal/config"
	dbRedis "github.com/kailas-cloud/patchscout/internal/db/redis"
	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/embedding/hashing"
	"github.com/kailas-cloud/patchscout/internal/engine"
	logpkg "github.com/kailas-cloud/patchscout/internal/logger"
	"github.com/kailas-cloud/patchscout/internal/metrics"
	corpusrepo "github.com/kailas-cloud/patchscout/internal/repository/corpus"
	"github.com/kailas-cloud/patchscout/internal/repository/embcache"
	openaiEmb "github.com/kailas-cloud/patchscout/internal/transport/openai"
	embeddinguc "github.com/kailas-cloud/patchscout/internal/usecase/embedding"
	"github.com/kailas-cloud/patchscout/internal/version"
)

// app is the composition root shared by all commands.
type app struct {
	env        string
	corpusPath string
	logLevel   string

	cfg      config.Config
	logger   *zap.Logger
	store    *dbRedis.Store
	embedder *embeddinguc.InstrumentedEmbedder
	checker  domain.HealthChecker
	engine   *engine.Engine
}

// setup loads config and builds the logger. A missing config file is tolerated
// when --corpus is given; defaults fill the rest.
func (a *app) setup() error {
	if a.logger != nil {
		return nil
	}

	override := func(c *config.Config) {
		if a.corpusPath != "" {
			c.Corpus.Path = a.corpusPath
		}
		if a.logLevel != "" {
			c.Logging.Level = a.logLevel
		}
	}
	cfg, err := config.Load(a.env, override)
	if errors.Is(err, fs.ErrNotExist) && a.corpusPath != "" {
		cfg = config.Config{}
		override(&cfg)
		cfg.ApplyDefaults()
		err = cfg.Validate()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

// buildEngine loads the corpus and builds indices and classifier once.
func (a *app) buildEngine(ctx context.Context) (*engine.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	if err := a.setup(); err != nil {
		return nil, err
	}
	a.logger.Info("Starting patchscout",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", a.env),
		zap.String("corpus", a.cfg.Corpus.Path),
		zap.String("embedder", a.cfg.Embedding.Provider),
	)

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	c, err := corpusrepo.NewLoader(a.logger).Load(a.cfg.Corpus.Path, a.cfg.Corpus.Format)
	if err != nil {
		return nil, err
	}

	if err := a.buildEmbedder(ctx); err != nil {
		return nil, err
	}

	e, err := engine.Build(ctx, c, engine.Options{
		Embedder:         a.embedder,
		EmbedBatchSize:   a.cfg.Embedding.BatchSize,
		OversampleFactor: a.cfg.Search.OversampleFactor,
		Classifier: classifier.Options{
			C:         a.cfg.Classifier.C,
			MaxIter:   a.cfg.Classifier.MaxIter,
			Tolerance: a.cfg.Classifier.Tolerance,
			Seed:      a.cfg.Classifier.Seed,
		},
	}, a.logger)
	if err != nil {
		return nil, err
	}

	prompt, total := a.embedder.Usage()
	a.logger.Info("loaded patch notes",
		zap.Int("records", c.Len()),
		zap.Int("dropped", c.Dropped()),
		zap.Int64("embedding_prompt_tokens", prompt),
		zap.Int64("embedding_total_tokens", total),
	)
	a.engine = e
	return e, nil
}

// buildEmbedder assembles the decorator chain:
// provider -> Cached (openai + cache.enabled only) -> Instrumented.
func (a *app) buildEmbedder(ctx context.Context) error {
	ec := a.cfg.Embedding

	var (
		base  domain.Embedder
		model string
	)
	switch ec.Provider {
	case config.ProviderOpenAI:
		oa := openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:            ec.OpenAI.APIKey,
			BaseURL:           ec.OpenAI.BaseURL,
			Model:             ec.OpenAI.Model,
			Dimensions:        ec.Dimensions,
			User:              ec.OpenAI.User,
			Provider:          config.ProviderOpenAI,
			RequestsPerSecond: ec.OpenAI.RequestsPerSecond,
			Logger:            a.logger,
		})
		a.checker = oa
		base, model = oa, ec.OpenAI.Model

		if a.cfg.Cache.Enabled {
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			namespace := fmt.Sprintf("%s:%d", model, ec.Dimensions)
			ttl := time.Duration(a.cfg.Cache.TTLSec) * time.Second
			base = embcache.New(base, store, namespace, ttl, metrics.EmbeddingCacheTotal, a.logger)
		}
	default:
		base, model = hashing.New(ec.Dimensions), "fnv-hashing"
	}

	a.embedder = embeddinguc.NewInstrumentedEmbedder(base, ec.Provider, model, ec.BatchSize, a.logger)
	a.logger.Info("Embedder created",
		zap.String("provider", ec.Provider),
		zap.String("model", model),
		zap.Bool("cache", a.store != nil),
	)
	return nil
}

func (a *app) openStore(ctx context.Context) (*dbRedis.Store, error) {
	cc := a.cfg.Cache
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cc.Addrs,
		Username: cc.Username,
		Password: cc.Password,
		DB:       cc.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cc.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	a.logger.Info("Connected to embedding cache", zap.Strings("addrs", cc.Addrs))
	a.store = store
	return store, nil
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}
