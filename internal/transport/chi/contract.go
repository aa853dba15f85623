package chi

import (
	"context"

	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
	"github.com/kailas-cloud/patchscout/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/patchscout/internal/usecase/health"
)

// Searcher runs retrieval queries.
type Searcher interface {
	Search(ctx context.Context, query string, m mode.Mode, filter string, topK int) (result.List, error)
}

// Predictor assigns a category label to text.
type Predictor interface {
	Predict(ctx context.Context, text string) (string, error)
	Classes() []string
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
