package patchscout

import "github.com/kailas-cloud/patchscout/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrCorpusNotFound         = domain.ErrCorpusNotFound
	ErrInvalidCorpus          = domain.ErrInvalidCorpus
	ErrEmptyCorpus            = domain.ErrEmptyCorpus
	ErrVectorDimMismatch      = domain.ErrVectorDimMismatch
	ErrEmbeddingProviderError = domain.ErrEmbeddingProviderError
	ErrInvalidRequest         = domain.ErrInvalidRequest
)
