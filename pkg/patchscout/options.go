package patchscout

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	embedder   Embedder
	dimensions int
	batchSize  int
	oversample int
	format     string
	seed       uint64

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEmbedder sets the text embedding provider.
// Defaults to the local feature-hashing embedder.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithHashingDimensions sets the width of the default hashing embedder.
// Ignored when WithEmbedder is used. Default: 384.
func WithHashingDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.dimensions = dim
	})
}

// WithEmbedBatchSize sets how many texts are embedded per call while indexing.
func WithEmbedBatchSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.batchSize = size
	})
}

// WithOversampleFactor sets how many candidates per requested result are
// retrieved before label filtering. Default: 3.
func WithOversampleFactor(factor int) Option {
	return optionFunc(func(c *clientConfig) {
		c.oversample = factor
	})
}

// WithFormat forces the corpus file format ("csv" or "xlsx") for Open.
// Default: derived from the file extension.
func WithFormat(format string) Option {
	return optionFunc(func(c *clientConfig) {
		c.format = format
	})
}

// WithClassifierSeed sets the classifier training seed. Default: 42.
func WithClassifierSeed(seed uint64) Option {
	return optionFunc(func(c *clientConfig) {
		c.seed = seed
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
