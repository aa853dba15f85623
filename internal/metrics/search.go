package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval and classification Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patchscout",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "patchscout",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"mode"},
	)

	// SearchShortfallTotal counts searches that returned fewer results than
	// requested because the label filter rejected too many candidates.
	SearchShortfallTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patchscout",
			Name:      "search_shortfall_total",
			Help:      "Searches that delivered fewer results than requested",
		},
		[]string{"mode"},
	)

	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "patchscout",
			Name:      "predictions_total",
			Help:      "Total number of category predictions by predicted label",
		},
		[]string{"label"},
	)

	EvalMAP = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "patchscout",
			Name:      "eval_map",
			Help:      "Mean average precision of the last evaluation run",
		},
		[]string{"mode"},
	)

	EvalNDCG = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "patchscout",
			Name:      "eval_ndcg",
			Help:      "Mean NDCG@10 of the last evaluation run",
		},
		[]string{"mode"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search, prediction and evaluation metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchShortfallTotal)
	prometheus.MustRegister(PredictionsTotal)
	prometheus.MustRegister(EvalMAP)
	prometheus.MustRegister(EvalNDCG)
	searchMetricsRegistered = true
}
