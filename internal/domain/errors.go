package domain

import "errors"

var (
	// ErrCorpusNotFound signals a missing or unreadable corpus file.
	ErrCorpusNotFound = errors.New("corpus not found")
	// ErrInvalidCorpus signals a corpus file without the required columns.
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrEmptyCorpus signals a corpus with no usable records.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrInvalidRequest signals a malformed search or predict request.
	ErrInvalidRequest = errors.New("invalid request")
)
