package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component (cache, embedding provider) is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates nothing can be served.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Component names used as Report.Checks keys.
const (
	ComponentCorpus    = "corpus"
	ComponentCache     = "cache"
	ComponentEmbedding = "embedding"
)

// Service coordinates health checks.
type Service struct {
	corpus    CorpusSizer
	cache     CachePinger
	embedding EmbeddingChecker
}

// New creates a Service. cache and embedding can be nil.
func New(corpus CorpusSizer, cache CachePinger, embedding EmbeddingChecker) *Service {
	return &Service{corpus: corpus, cache: cache, embedding: embedding}
}

// Check runs health checks against all components. An empty corpus is
// Unhealthy; a failing cache or embedding provider only degrades.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.corpus != nil && s.corpus.Len() > 0 {
		checks[ComponentCorpus] = CheckOK
	} else {
		checks[ComponentCorpus] = CheckError
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks[ComponentCache] = CheckError
		} else {
			checks[ComponentCache] = CheckOK
		}
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks[ComponentEmbedding] = CheckError
		} else {
			checks[ComponentEmbedding] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	if checks[ComponentCorpus] == CheckError {
		status = Unhealthy
	}

	return Report{Status: status, Checks: checks}
}
